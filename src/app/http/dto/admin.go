package dto

import "palpitefc/src/core/domain"

// CreatePlayerRequest adds a player to the pool.
type CreatePlayerRequest struct {
	Name        string   `json:"name" binding:"required,max=120"`
	PhotoURL    string   `json:"photo_url" binding:"omitempty,url"`
	Position    string   `json:"position" binding:"max=40"`
	ShirtNumber int      `json:"shirt_number" binding:"min=0,max=99"`
	Aliases     []string `json:"aliases" binding:"max=10,dive,max=120"`
}

// ToDomain converts the request into a player to be created.
func (r CreatePlayerRequest) ToDomain() domain.Player {
	return domain.Player{
		Name:        r.Name,
		PhotoURL:    r.PhotoURL,
		Position:    r.Position,
		ShirtNumber: r.ShirtNumber,
		Aliases:     r.Aliases,
	}
}

// PublishDailyRequest fixes the player of the day.
type PublishDailyRequest struct {
	PlayerID int64 `json:"player_id" binding:"required,gt=0"`
}

// CreateRosterRequest publishes a roster challenge. Player order is kept.
type CreateRosterRequest struct {
	Slug      string  `json:"slug" binding:"required"`
	Title     string  `json:"title" binding:"required,max=120"`
	PlayerIDs []int64 `json:"player_ids" binding:"required,min=1,max=60,dive,gt=0"`
}
