package models

import (
	"strings"
)

// RespondRequest carries an intermittent code/voice update from the
// interview page. At least one of the two fields must be non-empty.
type RespondRequest struct {
	Code       string `json:"code"`
	Transcript string `json:"transcript"`
	RequestID  string `json:"request_id"`
}

// implements the Validator interface
func (r *RespondRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" && strings.TrimSpace(r.Transcript) == "" {
		return &ErrorResponse{
			Code:    "empty_input",
			Message: "At least one of code or transcript is required",
		}
	}
	return nil
}

// CompleteRequest closes out an interview. Recording URLs are optional;
// uploads are handled by an external collaborator.
type CompleteRequest struct {
	ScreenVideoURL    string `json:"screen_video_url"`
	CandidateVideoURL string `json:"candidate_video_url"`
	RequestID         string `json:"request_id"`
}

func (r *CompleteRequest) Validate() error {
	const maxURLLength = 500
	if len(r.ScreenVideoURL) > maxURLLength || len(r.CandidateVideoURL) > maxURLLength {
		return &ErrorResponse{
			Code:    "invalid_recording_url",
			Message: "Recording URLs must be at most 500 characters",
		}
	}
	return nil
}
