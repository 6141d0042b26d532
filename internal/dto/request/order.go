package request

type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
