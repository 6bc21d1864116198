package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albapepper/fantasy-recap/internal/api/respond"
	"github.com/albapepper/fantasy-recap/internal/pipeline"
	"github.com/albapepper/fantasy-recap/internal/recap"
)

// GenerateRecapRequest is the body of POST /api/generate-recap.
type GenerateRecapRequest struct {
	Year        *int   `json:"year"`
	Week        *int   `json:"week"`
	Personality string `json:"personality,omitempty"`
}

// GenerateRecapResponse is the success body.
type GenerateRecapResponse struct {
	Success       bool   `json:"success"`
	Summary       string `json:"summary"`
	AudioFilename string `json:"audio_filename"`
	AudioURL      string `json:"audio_url"`
	Week          int    `json:"week"`
	Message       string `json:"message"`
}

// GenerateRecapFailure is the failure body.
type GenerateRecapFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

const maxRequestBody = 1 << 16

// GenerateRecap runs one recap synchronously.
// @Summary Generate a weekly recap
// @Description Fetches the week's matchups, composes the recap and renders it to audio.
// @Tags recap
// @Accept json
// @Produce json
// @Param body body GenerateRecapRequest true "Season, week and optional personality"
// @Success 200 {object} GenerateRecapResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} GenerateRecapFailure
// @Router /api/generate-recap [post]
func (h *Handler) GenerateRecap(w http.ResponseWriter, r *http.Request) {
	var body GenerateRecapRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&body); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if body.Year == nil || body.Week == nil {
		respond.WriteError(w, http.StatusBadRequest, "Year and week are required")
		return
	}
	if *body.Year <= 0 || *body.Week <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "Year and week must be positive integers")
		return
	}
	personality, err := recap.ParsePersonality(body.Personality)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.recaps.Generate(r.Context(), pipeline.Request{
		Year:        *body.Year,
		Week:        *body.Week,
		Personality: personality,
	})
	if err != nil {
		h.logger.Error("generate recap failed",
			"year", *body.Year, "week", *body.Week,
			"personality", string(personality),
			"stage", string(pipeline.StageOf(err)),
			"error", err,
		)
		respond.WriteJSONObject(w, http.StatusInternalServerError, GenerateRecapFailure{
			Success: false,
			Error:   failureMessage(err),
			Message: "Failed to generate recap",
		})
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, GenerateRecapResponse{
		Success:       true,
		Summary:       res.Text,
		AudioFilename: res.Filename,
		AudioURL:      "/api/audio/" + res.Filename,
		Week:          res.Week,
		Message:       "Recap generated successfully",
	})
}

// failureMessage keeps the stage-qualified error but distinguishes the two
// data-unavailable cases for callers.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrSeasonNotStarted):
		return "Season has not started yet: " + err.Error()
	case errors.Is(err, pipeline.ErrWeekIncomplete):
		return "Week is not complete yet: " + err.Error()
	default:
		return err.Error()
	}
}
