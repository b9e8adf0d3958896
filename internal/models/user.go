package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the Supabase profile row kept alongside the auth account.
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Email       string    `db:"email" json:"email" validate:"required,email"`
	Password    string    `db:"password" json:"password,omitempty" validate:"required,min=8"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
