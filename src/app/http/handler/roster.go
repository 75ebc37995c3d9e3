package handler

import (
	"github.com/gin-gonic/gin"

	"palpitefc/src/app/http/dto"
	"palpitefc/src/app/http/response"
	"palpitefc/src/app/middleware"
	"palpitefc/src/core/usecase"
)

// RosterHandler serves the "guess the elenco" game.
type RosterHandler struct {
	service *usecase.RosterGameService
}

func NewRosterHandler(service *usecase.RosterGameService) *RosterHandler {
	return &RosterHandler{service: service}
}

// Start creates or resumes the caller's attempt at a roster.
// POST /v1/rosters/:slug/attempts
func (h *RosterHandler) Start(c *gin.Context) {
	p, err := h.service.StartOrResume(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// GET /v1/roster-attempts/:attempt_id
func (h *RosterHandler) Get(c *gin.Context) {
	id, ok := parseAttemptID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// POST /v1/roster-attempts/:attempt_id/guesses
func (h *RosterHandler) Guess(c *gin.Context) {
	id, ok := parseAttemptID(c)
	if !ok {
		return
	}
	var req dto.GuessRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.service.SubmitGuess(c.Request.Context(), middleware.GetUserID(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, out)
}

// POST /v1/roster-attempts/:attempt_id/reset
func (h *RosterHandler) Reset(c *gin.Context) {
	id, ok := parseAttemptID(c)
	if !ok {
		return
	}
	p, err := h.service.Reset(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// POST /v1/roster-attempts/:attempt_id/abandon
func (h *RosterHandler) Abandon(c *gin.Context) {
	id, ok := parseAttemptID(c)
	if !ok {
		return
	}
	p, err := h.service.Abandon(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}
