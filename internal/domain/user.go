package domain

import "time"

// User is a web account. LineUserID links a chat identity to the account once
// the bot or the confirmation flow has seen it; the column is unique so the
// link can be upserted on conflict. Rows created from the chat side carry only
// the LINE id, so Email is nullable.
type User struct {
	ID           int64     `json:"id"`
	Email        *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	LineUserID   *string   `json:"line_user_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
