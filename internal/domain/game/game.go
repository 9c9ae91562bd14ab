package game

import (
	"strings"
	"time"
)

// Game is one boxed or loose game in the collection.
type Game struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	ReleaseDate        string    `json:"release_date"`
	Manufacturer       string    `json:"manufacturer"`
	Description        string    `json:"description"`
	Genre              string    `json:"genre"`
	Platform           string    `json:"platform"`
	PlatformNormalized string    `json:"platform_normalized"`
	Score              int       `json:"score"`
	CompleteInBox      bool      `json:"complete_in_box"`
	Condition          string    `json:"condition"`
	Inventory          int       `json:"inventory"`
	Sealed             bool      `json:"sealed"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CreateGameInput struct {
	Title         string
	ReleaseDate   string
	Manufacturer  string
	Description   string
	Genre         string
	Platform      string
	Score         int
	CompleteInBox bool
	Condition     string
	Inventory     int
	Sealed        bool
}

type UpdateGameInput struct {
	Title         *string
	ReleaseDate   *string
	Manufacturer  *string
	Description   *string
	Genre         *string
	Platform      *string
	Score         *int
	CompleteInBox *bool
	Condition     *string
	Inventory     *int
	Sealed        *bool
}

// NormalizePlatform lowercases a platform name and strips spaces, matching
// the platform_normalized column used for exact platform lookups.
func NormalizePlatform(platform string) string {
	return strings.ReplaceAll(strings.ToLower(platform), " ", "")
}
