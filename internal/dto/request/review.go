package request

// UpsertReviewRequest creates a review when ID is empty and updates it otherwise.
type UpsertReviewRequest struct {
	ID        string  `json:"-" validate:"omitempty,uuid"`
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type ListReviewsRequest struct {
	ProductID string
	Sort      string
	Rating    string
}
