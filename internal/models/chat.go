// internal/models/chat.go
package models

import "time"

// ChatMessage is one entry of a session's conversation history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}
