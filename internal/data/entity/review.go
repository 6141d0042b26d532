package entity

import (
	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	BaseSimple
	UserID       uuid.UUID `db:"user_id"`
	ProductID    uuid.UUID `db:"product_id"`
	Rating       int       `db:"rating"` // 1-5
	Comment      *string   `db:"comment"`
	HelpfulCount int       `db:"helpful_count"`
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
