package request

import (
	"github.com/google/uuid"
)

type AddCartItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"product_id"`
}

// UpdateCartItem carries the target quantity. Zero and negative values are
// accepted on purpose, they delegate to removal.
type UpdateCartItem struct {
	Quantity int32 `json:"quantity"`
}

type RemoveCartItem struct {
	ID     uuid.UUID `validate:"required,uuid"`
	UserId uuid.UUID `validate:"required,uuid"`
}
