package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsManager bool      `json:"is_manager"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FirstName returns the first whitespace-delimited token of the user's name.
func (u User) FirstName() string {
	return FirstName(u.Name)
}
