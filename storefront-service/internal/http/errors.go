package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/nehueninos/nhnproparts/pkg/httpx"
	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/catalog"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/checkout"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// Messages are shown to shoppers as-is.
var errorMappings = []errorMapping{
	{checkout.ErrEmptyCart, http.StatusConflict, "empty_cart", "Tu carrito está vacío"},
	{checkout.ErrNoShippingOptions, http.StatusConflict, "no_shipping_options", "⚠️ Por favor ingresá tu código postal para calcular el envío"},
	{checkout.ErrShippingNotSelected, http.StatusConflict, "shipping_not_selected", "Debes seleccionar un método de envío para continuar"},
	{checkout.ErrUnknownShippingOption, http.StatusBadRequest, "unknown_shipping_option", "El método de envío elegido no está disponible para tu código postal"},
	{checkout.ErrCartLocked, http.StatusConflict, "cart_locked", "No podés modificar el carrito mientras finalizás la compra"},
	{checkout.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity", "La cantidad debe ser al menos 1"},
	{checkout.ErrItemNotFound, http.StatusNotFound, "item_not_found", "El producto no está en tu carrito"},
	{checkout.ErrMissingContactField, http.StatusUnprocessableEntity, "missing_contact_field", "Por favor completá todos los campos"},
	{checkout.ErrInvalidEmail, http.StatusUnprocessableEntity, "invalid_email", "Ingresá un email válido"},
	{checkout.IllegalTransitionError, http.StatusConflict, "illegal_transition", "La operación no está permitida en este momento"},
	{catalog.ErrProductNotFound, http.StatusNotFound, "product_not_found", "Producto no encontrado"},
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp := httpx.ErrorResponse{Error: m.message, Code: m.code}
			var fieldErr *checkout.ContactFieldError
			if errors.As(err, &fieldErr) {
				resp.Details = fieldErr.Field
			}
			httpx.RespondJSON(w, r, m.status, resp)
			return
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		httpx.RespondError(w, r, http.StatusGatewayTimeout, "timeout", "La solicitud tardó demasiado, intentá de nuevo")
		return
	}

	logger.FromContext(r.Context()).Error().Err(err).Msg("request failed")
	httpx.RespondError(w, r, http.StatusInternalServerError, "internal_error", "Error al procesar la solicitud")
}
