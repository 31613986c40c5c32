package events

const (
	TopicOrderPlaced       = "orders.placed"
	TopicAppointmentBooked = "appointments.booked"
	TopicUserRegistered    = "users.registered"
)

// Partition key = entity id, so every event about one entity keeps its order.
func PartitionKey(id string) []byte { return []byte(id) }
