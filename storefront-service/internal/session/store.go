package session

import (
	"context"
	"errors"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

var ErrInvalidID = errors.New("invalid session id")

// Store persists visitor sessions. Get never reports a missing session; it
// returns a fresh one in BUILDING instead.
type Store interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
