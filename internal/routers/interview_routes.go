package routers

import (
	"vode/interview/internal/handlers"
	"vode/interview/internal/middleware"
	"vode/interview/internal/models"

	"github.com/go-chi/chi/v5"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, voiceHandler *handlers.VoiceHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Get("/{interviewID}", interviewHandler.EnterHandler)
		r.Post("/{interviewID}/start", interviewHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.RespondRequest]()).Post("/{interviewID}/response", interviewHandler.RespondHandler)
		// complete takes an optional body, so the handler decodes it itself
		r.Post("/{interviewID}/complete", interviewHandler.CompleteHandler)
	})
	router.Get("/api/v1/voices", voiceHandler.VoicesHandler)
}
