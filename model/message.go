package model

// Message represents a chat message sent to a provider.
type Message struct {
	Role    string
	Content string
}
