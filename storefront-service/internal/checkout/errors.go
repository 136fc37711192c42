package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart             = errors.New("cart is empty, nothing to checkout")
	ErrNoShippingOptions     = errors.New("no postal code has produced shipping options")
	ErrShippingNotSelected   = errors.New("no shipping option selected")
	ErrUnknownShippingOption = errors.New("shipping option was not offered for the last postal code")
	ErrCartLocked            = errors.New("cart cannot be modified in the current checkout state")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrItemNotFound          = errors.New("item not found in cart")
	ErrMissingContactField   = errors.New("missing contact field")
	ErrInvalidEmail          = errors.New("invalid email address")
	IllegalTransitionError   = errors.New("illegal transition of checkout state")
)

// ContactFieldError names the contact form field that failed validation.
type ContactFieldError struct {
	Field string
	Err   error
}

func (e *ContactFieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ContactFieldError) Unwrap() error {
	return e.Err
}
