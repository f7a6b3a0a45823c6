package assistant

import "kirana-assistant/internal/nlp"

// Input is one user utterance. Voice marks microphone transcripts, which go
// through the voice rule chain instead of the chat one.
type Input struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Voice     bool   `json:"voice"`
}

// Output carries the reply plus the interpretation that produced it.
type Output struct {
	Reply   string           `json:"reply"`
	Intent  string           `json:"intent"`
	Command nlp.VoiceCommand `json:"command"`
	Speak   bool             `json:"speak"`
}
