package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

type Quoter interface {
	Quote(postalCode string) []domain.ShippingOption
	Province(postalCode string) (string, bool)
}

// Notifier hands an order to the backend sinks. It must not block on delivery;
// outcomes arrive on the returned channel.
type Notifier interface {
	Dispatch(ctx context.Context, order domain.OrderPayload) <-chan domain.DeliveryResult
}

// Linker builds the messaging deep link the customer follows after submitting.
type Linker interface {
	OrderLink(order domain.OrderPayload) (string, error)
}

// Receipt is what a successful submission hands back to the caller.
type Receipt struct {
	Order       domain.OrderPayload
	MessageLink string
	Deliveries  <-chan domain.DeliveryResult
}

// Flow drives one session through Building, ShippingSelected and Submitted.
// It is not safe for concurrent use; callers own the session for the duration
// of one operation.
type Flow struct {
	sess     *domain.Session
	quoter   Quoter
	notifier Notifier
	linker   Linker

	newID func() string
	now   func() time.Time
}

func NewFlow(sess *domain.Session, quoter Quoter, notifier Notifier, linker Linker) *Flow {
	return &Flow{
		sess:     sess,
		quoter:   quoter,
		notifier: notifier,
		linker:   linker,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (f *Flow) Session() *domain.Session {
	return f.sess
}

func (f *Flow) State() domain.CheckoutState {
	return f.sess.State
}

// AddItem adds one unit of p. After a submission the first add starts a fresh
// cart, keeping any shipping picked since; while checkout is pending the cart
// is locked.
func (f *Flow) AddItem(p domain.Product) (domain.CartLine, error) {
	switch f.sess.State {
	case domain.CheckoutStateShippingSelected:
		return domain.CartLine{}, ErrCartLocked
	case domain.CheckoutStateSubmitted:
		f.sess.Cart.Lines = nil
		if err := f.transition(domain.CheckoutStateBuilding); err != nil {
			return domain.CartLine{}, err
		}
	}

	line := f.sess.Cart.Add(p, f.now())
	f.touch()
	return line, nil
}

func (f *Flow) UpdateQuantity(productID string, quantity int) error {
	if !f.sess.State.CartEditable() {
		return ErrCartLocked
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !f.sess.Cart.SetQuantity(productID, quantity) {
		return ErrItemNotFound
	}
	f.touch()
	return nil
}

func (f *Flow) RemoveItem(productID string) error {
	if !f.sess.State.CartEditable() {
		return ErrCartLocked
	}
	if !f.sess.Cart.Remove(productID) {
		return ErrItemNotFound
	}
	f.touch()
	return nil
}

// Quote replaces the session's quoted options. An unrecognized postal code
// leaves the session with no options. The current selection is not touched,
// even when it was priced for a different postal code.
func (f *Flow) Quote(postalCode string) []domain.ShippingOption {
	options := f.quoter.Quote(postalCode)
	f.sess.PostalCode = strings.TrimSpace(postalCode)
	f.sess.Province, _ = f.quoter.Province(postalCode)
	f.sess.Options = options
	f.touch()
	return options
}

// SelectShipping replaces any previous selection.
func (f *Flow) SelectShipping(option domain.ShippingOption) {
	f.sess.Cart.Shipping = &option
	f.touch()
}

// SelectShippingByID selects one of the options from the last quote.
func (f *Flow) SelectShippingByID(id domain.ShippingMethod) (domain.ShippingOption, error) {
	option, ok := f.sess.Option(id)
	if !ok {
		return domain.ShippingOption{}, ErrUnknownShippingOption
	}
	f.SelectShipping(option)
	return option, nil
}

// RequestCheckout moves to ShippingSelected. Calling it again while already
// there is a no-op.
func (f *Flow) RequestCheckout() error {
	if f.sess.Cart.IsEmpty() {
		return ErrEmptyCart
	}
	if len(f.sess.Options) == 0 {
		return ErrNoShippingOptions
	}
	if f.sess.Cart.Shipping == nil {
		return ErrShippingNotSelected
	}
	if f.sess.State == domain.CheckoutStateShippingSelected {
		return nil
	}
	if err := f.transition(domain.CheckoutStateShippingSelected); err != nil {
		return err
	}
	f.touch()
	return nil
}

// SubmitOrder validates the contact form, snapshots the cart into an order and
// hands it to the notifier without waiting for delivery. The cart is cleared
// as soon as the order is dispatched.
func (f *Flow) SubmitOrder(ctx context.Context, form domain.ContactForm) (Receipt, error) {
	shipping := f.sess.Cart.Shipping
	if shipping == nil {
		return Receipt{}, ErrShippingNotSelected
	}
	customer, err := validateContact(form)
	if err != nil {
		return Receipt{}, err
	}
	if f.sess.Cart.IsEmpty() {
		return Receipt{}, ErrEmptyCart
	}
	if !domain.CanTransitionTo(f.sess.State, domain.CheckoutStateSubmitted) {
		return Receipt{}, fmt.Errorf("%w: %s to %s", IllegalTransitionError, f.sess.State, domain.CheckoutStateSubmitted)
	}

	order := f.buildOrder(customer, *shipping)
	link, err := f.linker.OrderLink(order)
	if err != nil {
		return Receipt{}, fmt.Errorf("build message link: %w", err)
	}

	deliveries := f.notifier.Dispatch(ctx, order)

	f.sess.Cart.Clear()
	if err := f.transition(domain.CheckoutStateSubmitted); err != nil {
		return Receipt{}, err
	}
	f.touch()

	return Receipt{
		Order:       order,
		MessageLink: link,
		Deliveries:  deliveries,
	}, nil
}

// Cancel returns to Building. Cart contents are kept.
func (f *Flow) Cancel() error {
	if f.sess.State == domain.CheckoutStateBuilding {
		return nil
	}
	if err := f.transition(domain.CheckoutStateBuilding); err != nil {
		return err
	}
	f.touch()
	return nil
}

func (f *Flow) buildOrder(customer domain.Customer, shipping domain.ShippingOption) domain.OrderPayload {
	items := make([]domain.OrderItem, 0, len(f.sess.Cart.Lines))
	for _, l := range f.sess.Cart.Lines {
		items = append(items, domain.OrderItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
		})
	}

	return domain.OrderPayload{
		OrderID:  f.newID(),
		Customer: customer,
		Items:    items,
		Shipping: domain.OrderShipping{
			Method:    shipping.Label,
			Price:     shipping.Price,
			Estimated: shipping.Days,
		},
		Total:     f.sess.Cart.Total(),
		CreatedAt: f.now(),
	}
}

func (f *Flow) transition(to domain.CheckoutState) error {
	if !domain.CanTransitionTo(f.sess.State, to) {
		return fmt.Errorf("%w: %s to %s", IllegalTransitionError, f.sess.State, to)
	}
	f.sess.State = to
	return nil
}

func (f *Flow) touch() {
	f.sess.UpdatedAt = f.now()
}
