package transport

// Request is the JSON body of one message on the request subject.
type Request struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
	Voice     bool   `json:"voice,omitempty"`
}

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Response is the reply body. ErrorCode and ErrorMessage are only present
// when Status is "error".
type Response struct {
	SessionID    string  `json:"session_id"`
	Status       string  `json:"status"`
	Reply        string  `json:"reply,omitempty"`
	Intent       string  `json:"intent,omitempty"`
	Speak        bool    `json:"speak,omitempty"`
	ErrorCode    *string `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}
