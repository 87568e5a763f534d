package entities

// OrderRequest asks the backend to register a participation.
type OrderRequest struct {
	EventID        int64
	Email          string
	PeopleCount    int
	PaymentMethod  string
	IdempotencyKey string
}

// OrderConfirmation is the backend acknowledgement of an order.
type OrderConfirmation struct {
	OrderID int64
	EventID int64
	Email   string
	QRCode  string
	Raw     []byte
}
