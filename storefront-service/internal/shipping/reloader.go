package shipping

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/rs/zerolog"
)

// Reloader serves quotes from a YAML table and swaps in a new Quoter whenever
// the file changes. An invalid edit is logged and the previous table stays live.
type Reloader struct {
	path    string
	current atomic.Pointer[Quoter]
	log     zerolog.Logger
}

func NewReloader(path string, log zerolog.Logger) (*Reloader, error) {
	r := &Reloader{path: filepath.Clean(path), log: log.With().Str("component", "shipping_table").Logger()}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reloader) Quote(postalCode string) []domain.ShippingOption {
	return r.current.Load().Quote(postalCode)
}

func (r *Reloader) Province(postalCode string) (string, bool) {
	return r.current.Load().Province(postalCode)
}

func (r *Reloader) reload() error {
	table, err := LoadTable(r.path)
	if err != nil {
		return err
	}
	q, err := NewQuoter(table)
	if err != nil {
		return fmt.Errorf("shipping table %s: %w", r.path, err)
	}
	r.current.Store(q)
	return nil
}

// Watch blocks until ctx is done. The directory is watched rather than the
// file so editors that replace the file on save are still picked up.
func (r *Reloader) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", r.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := r.reload(); err != nil {
				r.log.Error().Err(err).Msg("shipping table reload failed, keeping previous table")
				continue
			}
			r.log.Info().Str("path", r.path).Msg("shipping table reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn().Err(err).Msg("shipping table watcher error")
		}
	}
}
