package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vode/interview/internal/apperrors"
	"vode/interview/internal/interview"
	"vode/interview/internal/middleware"
	"vode/interview/internal/models"
	"vode/interview/internal/utils"
)

// Requester identity arrives as a header set by the auth collaborator in
// front of this service; the core only compares it to the interview's
// candidate.
const requesterHeader = "X-Candidate-ID"

type InterviewHandler struct {
	service *interview.Service
	logger  *zap.Logger
}

func NewInterviewHandler(service *interview.Service, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger,
	}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func requestIDs(w http.ResponseWriter, r *http.Request) (interviewID, requesterID uint, ok bool) {
	interviewID, okInterview := parseID(chi.URLParam(r, "interviewID"))
	if !okInterview {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_interview_id",
			Message: "Interview ID must be a positive integer",
		})
		return 0, 0, false
	}

	requesterID, okRequester := parseID(r.Header.Get(requesterHeader))
	if !okRequester {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "missing_requester",
			Message: "A valid " + requesterHeader + " header is required",
		})
		return 0, 0, false
	}

	return interviewID, requesterID, true
}

// writeServiceError maps lifecycle-guard errors onto HTTP statuses.
func (h *InterviewHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "Interview not found",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "unauthorized",
			Message: "You do not have access to this interview",
		})
	case errors.Is(err, apperrors.ErrAlreadyStarted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "already_started",
			Message: "Interview has already been started",
		})
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "already_completed",
			Message: "Interview has already been completed",
		})
	case errors.Is(err, apperrors.ErrNotStarted):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "not_started",
			Message: "Interview has not been started yet",
		})
	case errors.Is(err, apperrors.ErrEmptyInput):
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "empty_input",
			Message: "At least one of code or transcript is required",
		})
	case errors.Is(err, apperrors.ErrInvalidQuestionFormat):
		h.logger.Error("Question generation failed", zap.Error(err), zap.String("path", r.URL.Path))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "question_generation_failed",
			Message: "Failed to generate a question for this interview",
		})
	default:
		h.logger.Error("Interview operation failed", zap.Error(err), zap.String("path", r.URL.Path))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Internal server error",
		})
	}
}

// EnterHandler serves the interview page payload, assigning a question on
// first view and re-seeding the coaching session.
func (h *InterviewHandler) EnterHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, requesterID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	result, err := h.service.Enter(r.Context(), interviewID, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.EnterResponse{
		Interview: result.Interview,
		Question:  result.Question,
		Round:     result.Round,
		Role:      result.Role,
	})
}

// StartHandler marks the interview as begun.
func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, requesterID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	result, err := h.service.Start(interviewID, requesterID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.StartResponse{
		Success:   true,
		StartedAt: result.StartedAt.UTC().Format(time.RFC3339),
	})
}

// RespondHandler forwards one code/voice update to the coach. The reply
// is successful even when the text is a fallback or the audio is empty.
func (h *InterviewHandler) RespondHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, requesterID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	req := middleware.GetValidatedRequest[*models.RespondRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	result, err := h.service.Respond(r.Context(), interviewID, requesterID, req.Code, req.Transcript)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("Coaching response generated",
		zap.Uint("interview_id", interviewID),
		zap.String("request_id", req.RequestID),
		zap.Bool("fallback", result.Fallback),
		zap.Bool("speech_ok", result.SpeechOK))

	utils.JSON(w, http.StatusOK, models.RespondResponse{
		Reasoning:   result.Text,
		AudioBase64: base64.StdEncoding.EncodeToString(result.Audio),
		Success:     true,
		RequestID:   req.RequestID,
	})
}

// CompleteHandler closes out the interview. The body is optional: timer
// expiry posts an empty body, the recorder posts upload URLs.
func (h *InterviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	interviewID, requesterID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req models.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_json",
			Message: "Invalid JSON in request body",
		})
		return
	}
	if err := req.Validate(); err != nil {
		if errResp, ok := err.(*models.ErrorResponse); ok {
			utils.JSON(w, http.StatusBadRequest, *errResp)
			return
		}
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "validation_error",
			Message: err.Error(),
		})
		return
	}

	result, err := h.service.Complete(r.Context(), interviewID, requesterID, req.ScreenVideoURL, req.CandidateVideoURL)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, models.CompleteResponse{
		Score:       result.Score,
		Feedback:    result.Feedback,
		AudioBase64: base64.StdEncoding.EncodeToString(result.Audio),
		Success:     true,
	})
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID generates a request ID if one is not provided
func ensureRequestID(requestID string) string {
	if requestID == "" {
		return generateRequestID()
	}
	return requestID
}
