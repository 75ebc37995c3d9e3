package dto

// StartDailyRequest is the optional payload for POST /v1/daily/attempts.
// An empty date key means today.
type StartDailyRequest struct {
	DateKey string `json:"date_key" binding:"omitempty,datetime=2006-01-02"`
}

// GuessRequest is the payload for submitting a guess in either game.
type GuessRequest struct {
	Text string `json:"text" binding:"required"`
}
