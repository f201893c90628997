package profile

import "time"

// Profile is a user's single selected class; it gates access to all
// class-scoped content.
type Profile struct {
	UserID          string    `json:"user_id"`
	SelectedClassID int       `json:"selected_class_id"`
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}
