package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	SellerId    uuid.UUID       `json:"seller_id"`
	Name        string          `json:"name"`
	ImageUrl    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	IsFlashSale bool            `json:"is_flash_sale"`
	FlashPrice  decimal.Decimal `json:"flash_price"`
	Quantity    int32           `json:"quantity"`
	InStock     bool            `json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
