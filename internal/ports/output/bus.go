package output

// Bus is an in-process publish/subscribe channel with synchronous delivery.
type Bus[T any] interface {
	Publish(msg T)
	// Subscribe registers handler and returns the function that removes it.
	Subscribe(handler func(T)) (unsubscribe func())
}
