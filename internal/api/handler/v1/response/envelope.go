package response

import (
	"github.com/gin-gonic/gin"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

// Envelope wraps every successful response body.
type Envelope struct {
	OK      bool   `json:"ok" example:"true"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Render writes the envelope. ok follows the status code.
func Render(ctx *gin.Context, status int, message string, data any) {
	ctx.JSON(status, Envelope{
		OK:      status < 400,
		Message: message,
		Data:    data,
	})
}

type UploadedImage struct {
	URL string `json:"url"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Avatar   string `json:"avatarUrl"`
}

type AuthSession struct {
	User        domain.User `json:"userData"`
	AccessToken string      `json:"accessToken"`
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
}

type Registration struct {
	Registered bool                   `json:"registered"`
	Submission *domain.BookSubmission `json:"submission,omitempty"`
}
