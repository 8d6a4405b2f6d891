package models

import "time"

// MaterialType is an entry of the plastic material catalog with its known
// thicknesses and colors.
type MaterialType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Thicknesses []float64 `json:"thicknesses" db:"-"`
	Colors      []string  `json:"colors" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// BotUser is a chat-bot user registered on /start.
type BotUser struct {
	TgID     int64   `json:"tg_id" db:"tg_id"`
	Username *string `json:"username" db:"username"`
	Position *string `json:"position" db:"position"`
	Role     *string `json:"role" db:"role"`
}
