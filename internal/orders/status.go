package orders

type Status string

// Orders are created pending. Later states are set by back-office tooling
// outside this service; nothing here moves an order between them.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)
