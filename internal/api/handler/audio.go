package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/fantasy-recap/internal/api/respond"
	"github.com/albapepper/fantasy-recap/internal/artifact"
)

// GetAudio streams a stored recap.
// @Summary Get recap audio
// @Tags audio
// @Produce audio/mpeg
// @Param filename path string true "Artifact file name, e.g. recap_week_4.mp3"
// @Success 200 {file} binary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/audio/{filename} [get]
func (h *Handler) GetAudio(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	f, info, err := h.artifacts.Open(name)
	switch {
	case errors.Is(err, artifact.ErrInvalidName):
		respond.WriteError(w, http.StatusBadRequest, "Invalid file type")
		return
	case errors.Is(err, artifact.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "Audio file not found")
		return
	case err != nil:
		h.logger.Error("open audio failed", "file", name, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", artifact.MIMEType)
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// AvailableAudioResponse lists stored recaps.
type AvailableAudioResponse struct {
	AudioFiles []artifact.Artifact `json:"audio_files"`
	Count      int                 `json:"count"`
}

// ListAudio lists stored recaps sorted by week.
// @Summary List available audio
// @Tags audio
// @Produce json
// @Success 200 {object} AvailableAudioResponse
// @Router /api/available-audio [get]
func (h *Handler) ListAudio(w http.ResponseWriter, r *http.Request) {
	files, err := h.artifacts.List()
	if err != nil {
		h.logger.Error("list audio failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, AvailableAudioResponse{
		AudioFiles: files,
		Count:      len(files),
	})
}
