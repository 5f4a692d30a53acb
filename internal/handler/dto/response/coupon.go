package response

import "github.com/google/uuid"

type CouponCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
