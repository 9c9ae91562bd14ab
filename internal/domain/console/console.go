package console

import (
	"strings"
	"time"
)

// Console is one console unit in the collection. SerialNumberConsole is
// unique across all units.
type Console struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Model               string    `json:"model"`
	ModelNormalized     string    `json:"model_normalized"`
	ReleaseDate         string    `json:"release_date"`
	Manufacturer        string    `json:"manufacturer"`
	SerialNumberBox     string    `json:"serial_number_box"`
	SerialNumberConsole string    `json:"serial_number_console"`
	CompleteInBox       bool      `json:"complete_in_box"`
	Condition           string    `json:"condition"`
	Inventory           int       `json:"inventory"`
	Sealed              bool      `json:"sealed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateConsoleInput struct {
	Name                string
	Model               string
	ReleaseDate         string
	Manufacturer        string
	SerialNumberBox     string
	SerialNumberConsole string
	CompleteInBox       bool
	Condition           string
	Inventory           int
	Sealed              bool
}

type UpdateConsoleInput struct {
	Name                *string
	Model               *string
	ReleaseDate         *string
	Manufacturer        *string
	SerialNumberBox     *string
	SerialNumberConsole *string
	CompleteInBox       *bool
	Condition           *string
	Inventory           *int
	Sealed              *bool
}

// NormalizeModel lowercases a model name and strips spaces, matching the
// model_normalized column used for exact model lookups.
func NormalizeModel(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), " ", "")
}
