package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/catalog"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/checkout"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/session"
)

type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Invalidate(ctx context.Context) error
}

type ContactLinker interface {
	checkout.Linker
	ContactLink() string
}

// Storefront runs checkout operations against stored sessions. Each call loads
// the session, applies one flow operation and saves the result; a failed
// operation leaves the stored session untouched.
type Storefront struct {
	sessions session.Store
	catalog  Catalog
	quoter   checkout.Quoter
	notifier checkout.Notifier
	linker   ContactLinker
}

func NewStorefront(sessions session.Store, catalog Catalog, quoter checkout.Quoter, notifier checkout.Notifier, linker ContactLinker) *Storefront {
	return &Storefront{
		sessions: sessions,
		catalog:  catalog,
		quoter:   quoter,
		notifier: notifier,
		linker:   linker,
	}
}

func (s *Storefront) Products(ctx context.Context, category, query string) ([]domain.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.Filter(products, category, query), nil
}

func (s *Storefront) Categories(ctx context.Context) ([]string, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog.Categories(products), nil
}

func (s *Storefront) ContactLink() string {
	return s.linker.ContactLink()
}

func (s *Storefront) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *Storefront) AddItem(ctx context.Context, sessionID, productID string) (*domain.Session, error) {
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		_, err := f.AddItem(product)
		return err
	})
}

// product looks id up in the catalog. An id missing from a cached catalog may
// have been published since the cache was filled, so the cache is dropped and
// the lookup retried once.
func (s *Storefront) product(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.catalog.Product(ctx, id)
	if !errors.Is(err, catalog.ErrProductNotFound) {
		return product, err
	}
	if err := s.catalog.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("failed to invalidate catalog cache")
		return domain.Product{}, catalog.ErrProductNotFound
	}
	return s.catalog.Product(ctx, id)
}

func (s *Storefront) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		return f.UpdateQuantity(productID, quantity)
	})
}

func (s *Storefront) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		return f.RemoveItem(productID)
	})
}

func (s *Storefront) Quote(ctx context.Context, sessionID, postalCode string) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		f.Quote(postalCode)
		return nil
	})
}

func (s *Storefront) SelectShipping(ctx context.Context, sessionID string, optionID domain.ShippingMethod) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		_, err := f.SelectShippingByID(optionID)
		return err
	})
}

func (s *Storefront) RequestCheckout(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		return f.RequestCheckout()
	})
}

func (s *Storefront) CancelCheckout(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.update(ctx, sessionID, func(f *checkout.Flow) error {
		return f.Cancel()
	})
}

// SubmitOrder returns the receipt even when the cleared session cannot be
// saved, because the order has already been dispatched by then.
func (s *Storefront) SubmitOrder(ctx context.Context, sessionID string, form domain.ContactForm) (checkout.Receipt, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return checkout.Receipt{}, err
	}

	receipt, err := s.flow(sess).SubmitOrder(ctx, form)
	if err != nil {
		return checkout.Receipt{}, err
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("order_id", receipt.Order.OrderID).
		Str("total", receipt.Order.Total.String()).
		Int("items", len(receipt.Order.Items)).
		Msg("order submitted")

	if err := s.sessions.Save(ctx, sess); err != nil {
		log.Error().Err(err).Str("order_id", receipt.Order.OrderID).Msg("failed to save session after submit")
	}
	return receipt, nil
}

func (s *Storefront) EndSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Storefront) update(ctx context.Context, sessionID string, op func(*checkout.Flow) error) (*domain.Session, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(s.flow(sess)); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *Storefront) flow(sess *domain.Session) *checkout.Flow {
	return checkout.NewFlow(sess, s.quoter, s.notifier, s.linker)
}
