package entity

import "time"

// Category groups recipes. Names are unique. Categories have no owner.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
