package entity

import (
	"time"

	"WellCommand/pkg/dashboard"
)

type ChatSession struct {
	ID           string
	Messages     []Message
	View         *dashboard.ViewState
	CreatedAt    time.Time
	LastActivity time.Time
}
