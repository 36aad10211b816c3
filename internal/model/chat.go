package model

import (
	"strings"
	"time"
)

// ChatMessage is one turn of an employee's conversation with the assistant.
type ChatMessage struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	IsAI      bool      `json:"is_ai"`
	CreatedAt time.Time `json:"created_at"`
}

// Speaker labels used when a conversation is rendered for the pipeline.
const (
	SpeakerEmployee = "employee"
	SpeakerAI       = "AI"
)

func (m ChatMessage) Speaker() string {
	if m.IsAI {
		return SpeakerAI
	}
	return SpeakerEmployee
}

// FirstName returns the first whitespace-delimited token of a full name, or "" for a
// blank name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
