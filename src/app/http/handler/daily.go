package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"palpitefc/src/app/http/dto"
	"palpitefc/src/app/http/response"
	"palpitefc/src/app/middleware"
	"palpitefc/src/core/usecase"
)

// DailyHandler serves the player-of-the-day game.
type DailyHandler struct {
	service *usecase.DailyGameService
}

func NewDailyHandler(service *usecase.DailyGameService) *DailyHandler {
	return &DailyHandler{service: service}
}

// Start creates or resumes the caller's attempt. The body is optional.
// POST /v1/daily/attempts
func (h *DailyHandler) Start(c *gin.Context) {
	var req dto.StartDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, err)
		return
	}

	p, err := h.service.StartOrResume(c.Request.Context(), middleware.GetUserID(c), req.DateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, p)
}

// Get returns the attempt snapshot.
// GET /v1/daily/attempts/:attempt_id
func (h *DailyHandler) Get(c *gin.Context) {
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

// Guess submits a guess.
// POST /v1/daily/attempts/:attempt_id/guesses
func (h *DailyHandler) Guess(c *gin.Context) {
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
