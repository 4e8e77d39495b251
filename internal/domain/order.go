package domain

import "encoding/json"

const (
	StatusPendingPayment = "PENDING_PAYMENT"
	StatusPaid           = "PAID"

	// Gateway status that actually marks an order as paid.
	PaymentCaptured = "CAPTURED"
)

// TotalPrice is an opaque price breakdown; only grandTotal is interpreted,
// as the expected amount during payment confirmation.
type TotalPrice struct {
	GrandTotal *float64 `json:"grandTotal,omitempty"`
}

type Payment struct {
	TransactionID *string  `json:"transactionId"`
	Amount        *float64 `json:"amount"`
	Method        *string  `json:"method"`
	Status        *string  `json:"status"`
	PaidAt        *string  `json:"paidAt"`
}

// Order lives only in process memory; it is never persisted as a whole.
type Order struct {
	OrderID         string            `json:"orderId"`
	CartOrderRef    *string           `json:"cartOrderRef"`
	CartID          *string           `json:"cartId"`
	ProductList     []json.RawMessage `json:"productList"`
	TotalPrice      TotalPrice        `json:"totalPrice"`
	Currency        string            `json:"currency"`
	Channel         string            `json:"channel"`
	Status          string            `json:"status"`
	CreatedAt       string            `json:"createdAt"`
	Payment         *Payment          `json:"payment"`
	PaidAt          *string           `json:"paidAt"`
	KitchenTicketID *string           `json:"kitchenTicketId"`
}

// KitchenTicket is the dispatch response, recorded under the caller's
// idempotency key and replayed verbatim on repeats.
type KitchenTicket struct {
	OrderID         string `json:"orderId"`
	Accepted        bool   `json:"accepted"`
	KitchenTicketID string `json:"kitchenTicketId"`
}

// SaleRecord is the denormalized snapshot appended to sales.json when an
// order is dispatched to the kitchen. Append-only, never updated.
type SaleRecord struct {
	OrderID         string            `json:"orderId"`
	PaidAt          *string           `json:"paidAt"`
	CartID          *string           `json:"cartId"`
	Amount          float64           `json:"amount"`
	Method          *string           `json:"method"`
	Status          string            `json:"status"`
	Items           []json.RawMessage `json:"items"`
	KitchenTicketID string            `json:"kitchenTicketId"`
}

// Request payloads. Every field is optional; missing fields fall back to the
// defaults the services apply, never to a validation error.

type CreateOrderRequest struct {
	OrderID     *string           `json:"orderId"`
	CartID      *string           `json:"cartId"`
	ProductList []json.RawMessage `json:"productList"`
	TotalPrice  *TotalPrice       `json:"totalPrice"`
	Currency    *string           `json:"currency"`
	Channel     *string           `json:"channel"`
}

type ConfirmPaymentRequest struct {
	OrderID       *string  `json:"orderId"`
	TransactionID *string  `json:"transactionId"`
	Amount        *float64 `json:"amount"`
	Method        *string  `json:"method"`
	Status        *string  `json:"status"`
	PaidAt        *string  `json:"paidAt"`
}

type SendToKitchenRequest struct {
	OrderID        *string `json:"orderId"`
	IdempotencyKey *string `json:"idempotencyKey"`
}
