package models

// EnterResponse is everything the interview page needs to render.
type EnterResponse struct {
	Interview *Interview `json:"interview"`
	Question  *Question  `json:"question"`
	Round     *Round     `json:"round"`
	Role      *Role      `json:"role"`
}

// RespondResponse returns the coach's reply for one update. Success is
// true even when the reply text is a fallback; only pre-call validation
// failures produce an error status instead.
type RespondResponse struct {
	Reasoning   string `json:"reasoning"`
	AudioBase64 string `json:"audio_base64"`
	Success     bool   `json:"success"`
	RequestID   string `json:"request_id"`
}

// CompleteResponse is the final scorecard for a finished interview.
type CompleteResponse struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	Success     bool   `json:"success"`
}

// StartResponse acknowledges a successful start call.
type StartResponse struct {
	Success   bool   `json:"success"`
	StartedAt string `json:"started_at"`
}

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}
