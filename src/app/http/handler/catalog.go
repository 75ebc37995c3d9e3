package handler

import (
	"github.com/gin-gonic/gin"

	"palpitefc/src/app/http/dto"
	"palpitefc/src/app/http/response"
	"palpitefc/src/core/usecase"
)

// CatalogHandler exposes player and challenge administration.
type CatalogHandler struct {
	service *usecase.CatalogService
}

func NewCatalogHandler(service *usecase.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// POST /v1/admin/players
func (h *CatalogHandler) CreatePlayer(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.service.CreatePlayer(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, p)
}

// GET /v1/admin/players
func (h *CatalogHandler) ListPlayers(c *gin.Context) {
	players, err := h.service.ListPlayers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, players)
}

// PUT /v1/admin/daily/:date_key
func (h *CatalogHandler) PublishDaily(c *gin.Context) {
	var req dto.PublishDailyRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.service.PublishDaily(c.Request.Context(), c.Param("date_key"), req.PlayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, ch)
}

// POST /v1/admin/rosters
func (h *CatalogHandler) CreateRoster(c *gin.Context) {
	var req dto.CreateRosterRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.service.CreateRoster(c.Request.Context(), req.Slug, req.Title, req.PlayerIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, r)
}
