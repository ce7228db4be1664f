package entity

import (
	"time"

	"WellCommand/pkg/nlp"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleError     MessageRole = "error"
)

// Message is one transcript entry. Assistant messages carry the actions
// that were applied; user and error messages carry none.
type Message struct {
	ID        string
	Role      MessageRole
	Text      string
	Actions   nlp.ActionList
	Source    string
	CreatedAt time.Time
}
