package domain

// CheckoutItem is a purchasable line handed to the payment gateway when a
// checkout session is created.
type CheckoutItem struct {
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
	Currency           string `json:"currency"`
	PriceInCents       int64  `json:"price_in_cents"`
	Quantity           int    `json:"quantity"`
}

// CheckoutSession is a payment session created at the gateway. RedirectURL
// is where the shopper completes payment.
type CheckoutSession struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

// SessionStatus is the terminal state of a checkout session as reported by
// the payment gateway.
type SessionStatus string

const (
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusFailed    SessionStatus = "failed"
)

// CheckoutState tracks where a session's checkout attempt currently is.
// Only one attempt per cart session may be in flight at a time.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateRedirected CheckoutState = "redirected"
	CheckoutStateFailed     CheckoutState = "failed"
)

// CheckoutItemsFromCart converts cart lines into gateway line items.
func CheckoutItemsFromCart(cart *Cart) []CheckoutItem {
	items := make([]CheckoutItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, CheckoutItem{
			ProductName:        line.Name,
			ProductDescription: line.Description,
			Currency:           cart.Currency,
			PriceInCents:       line.PriceCents,
			Quantity:           line.Quantity,
		})
	}
	return items
}
