package payment

// EventPaymentSucceeded is the only event type the backend acts on; anything
// else is acknowledged and ignored.
const EventPaymentSucceeded = "payment.succeeded"

// Event is a payment confirmation delivery. It is untrusted until the raw
// body it was decoded from has passed signature verification.
type Event struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	AmountTotal   int64  `json:"amountTotal"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	Metadata      string `json:"metadata"`
}
