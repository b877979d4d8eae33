package channels

// Redis key and channel prefixes. A full key is the prefix followed by the sensor id.
const (
	Reading = "reading:"
	Seen    = "lastTimestamp:"
)
