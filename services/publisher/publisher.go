package publisher

// Publisher mirrors dispatched alerts to a stream for other consumers.
type Publisher interface {
	// Publish publishes one alert payload under its category
	Publish(category string, message []byte) error

	// Trim trims the stream to the configured maximum length
	Trim() error

	// Close closes the publisher connection
	Close() error
}
