// Package hub fans messages out to websocket clients over channels.
package hub

// Message is one JSON text frame queued for a client.
type Message struct {
	Data []byte
}

func NewJSONMessage(data []byte) Message {
	return Message{Data: data}
}
