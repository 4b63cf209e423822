package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"vode/interview/internal/models"
	"vode/interview/internal/speech"
	"vode/interview/internal/utils"
)

type VoiceHandler struct {
	synthesizer speech.Synthesizer
	logger      *zap.Logger
}

func NewVoiceHandler(synthesizer speech.Synthesizer, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// VoicesHandler lists the synthesis voices available from the speech
// provider.
func (h *VoiceHandler) VoicesHandler(w http.ResponseWriter, r *http.Request) {
	voices, err := h.synthesizer.Voices(r.Context())
	if err != nil {
		h.logger.Error("Failed to list voices",
			zap.String("provider", h.synthesizer.GetProviderName()),
			zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "speech_provider_error",
			Message: "Failed to list voices from the speech provider",
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"provider": h.synthesizer.GetProviderName(),
		"voices":   voices,
	})
}
