package orders

const (
	TopicCheckoutRequested = "orders.checkout.requested"
)

// Partition key = username, supaya semua checkout 1 user maintain urutan.
func PartitionKey(username string) []byte { return []byte(username) }
