package checkout

import (
	"net/mail"
	"strings"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

// validateContact trims every field and checks they are all present. Fields are
// checked in form order so the first blank one is reported.
func validateContact(form domain.ContactForm) (domain.Customer, error) {
	c := domain.Customer{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Phone:   strings.TrimSpace(form.Phone),
		Address: strings.TrimSpace(form.Address),
	}

	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
	}
	for _, f := range fields {
		if f.value == "" {
			return domain.Customer{}, &ContactFieldError{Field: f.name, Err: ErrMissingContactField}
		}
	}

	addr, err := mail.ParseAddress(c.Email)
	if err != nil || addr.Address != c.Email {
		return domain.Customer{}, &ContactFieldError{Field: "email", Err: ErrInvalidEmail}
	}
	return c, nil
}
