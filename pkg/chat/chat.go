// Package chat builds the JSON chat components carried by disconnect and
// system-message packets.
package chat

import "encoding/json"

// Message is a Minecraft JSON chat component.
type Message struct {
	Text  string    `json:"text"`
	Color string    `json:"color,omitempty"`
	Extra []Message `json:"extra,omitempty"`
}

// String serializes the message to JSON. Going through the encoder keeps
// user-influenced reasons from escaping the component.
func (m Message) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// Text creates a plain text message.
func Text(text string) Message {
	return Message{Text: text}
}

// Colored creates a colored text message.
func Colored(text, color string) Message {
	return Message{Text: text, Color: color}
}
