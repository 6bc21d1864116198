package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/albapepper/fantasy-recap/internal/api/respond"
	"github.com/albapepper/fantasy-recap/internal/cache"
)

// LeagueInfoResponse is the body of GET /api/league-info. TargetWeek is
// null until a week has completed.
type LeagueInfoResponse struct {
	LeagueName  string `json:"league_name"`
	Year        int    `json:"year"`
	CurrentWeek int    `json:"current_week"`
	TargetWeek  *int   `json:"target_week"`
}

// GetLeagueInfo returns league name, current week and target week.
// @Summary League info
// @Tags league
// @Produce json
// @Param year query int false "Season (defaults to the configured season)"
// @Success 200 {object} LeagueInfoResponse
// @Success 304
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/league-info [get]
func (h *Handler) GetLeagueInfo(w http.ResponseWriter, r *http.Request) {
	year := 0
	if s := r.URL.Query().Get("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.WriteError(w, http.StatusBadRequest, "year must be a positive integer")
			return
		}
		year = n
	}

	cacheKey := fmt.Sprintf("league-info:%d", year)
	data, etag, ok := h.cache.Get(r.Context(), cacheKey)
	h.cacheLookup(ok)
	if ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, h.cacheTTL, true)
		return
	}

	lg, err := h.recaps.LeagueInfo(r.Context(), year)
	if err != nil {
		h.logger.Error("league info failed", "year", year, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := LeagueInfoResponse{
		LeagueName:  lg.Name,
		Year:        lg.Year,
		CurrentWeek: lg.CurrentWeek,
	}
	if t := lg.TargetWeek(); t > 0 {
		resp.TargetWeek = &t
	}
	data, err = json.Marshal(resp)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	etag = h.cache.Set(r.Context(), cacheKey, data, h.cacheTTL)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, h.cacheTTL, false)
}
