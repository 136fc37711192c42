package domain

type CheckoutState string

const (
	CheckoutStateBuilding         CheckoutState = "BUILDING"
	CheckoutStateShippingSelected CheckoutState = "SHIPPING_SELECTED"
	CheckoutStateSubmitted        CheckoutState = "SUBMITTED"
)

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStateBuilding:         {CheckoutStateShippingSelected, CheckoutStateSubmitted},
	CheckoutStateShippingSelected: {CheckoutStateSubmitted, CheckoutStateBuilding},
	CheckoutStateSubmitted:        {CheckoutStateBuilding},
}

func CanTransitionTo(from, to CheckoutState) bool {
	for _, s := range checkoutTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CartEditable reports whether lines may be changed in this state.
func (s CheckoutState) CartEditable() bool {
	return s == CheckoutStateBuilding
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}
