package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
)

var ErrNoShopNumber = errors.New("shop messaging number has no digits")

const (
	orderMessageFormat = "¡Hola! Acabo de realizar un pedido (#%s) por un total de $%s.\n" +
		"Método de envío: %s. \n" +
		"Me gustaría coordinar el pago y la entrega. ¡Gracias!"
	inquiryMessage = "¡Hola! Tengo una consulta sobre los productos"

	shortIDLength = 8
)

// encodeURIComponent leaves these unescaped while url.QueryEscape does not.
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// WhatsApp builds wa.me deep links addressed to the shop.
type WhatsApp struct {
	number string
}

// NewWhatsApp keeps only the digits of number, so "+54 370 409-1739" works.
func NewWhatsApp(number string) (*WhatsApp, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return nil, ErrNoShopNumber
	}
	return &WhatsApp{number: digits}, nil
}

// OrderLink returns the link the customer follows to coordinate payment and
// delivery of order.
func (w *WhatsApp) OrderLink(order domain.OrderPayload) (string, error) {
	if order.OrderID == "" {
		return "", errors.New("order has no id")
	}
	msg := fmt.Sprintf(orderMessageFormat, shortID(order.OrderID), order.Total.String(), order.Shipping.Method)
	return w.link(msg), nil
}

// ContactLink is the general inquiry link behind the floating contact button.
func (w *WhatsApp) ContactLink() string {
	return w.link(inquiryMessage)
}

func (w *WhatsApp) link(text string) string {
	return "https://wa.me/" + w.number + "?text=" + componentFixups.Replace(url.QueryEscape(text))
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
