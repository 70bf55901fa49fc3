package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	SellerId    uuid.UUID       `validate:"required,uuid" json:"seller_id"`
	Name        string          `validate:"required"       json:"name"`
	ImageUrl    string          `json:"image_url"`
	Price       decimal.Decimal `validate:"required"       json:"price"`
	IsFlashSale bool            `json:"is_flash_sale"`
	FlashPrice  decimal.Decimal `json:"flash_price"`
	Quantity    int32           `validate:"gte=0"          json:"quantity"`
	InStock     bool            `json:"in_stock"`
}

type UpdateProductStock struct {
	Quantity int32 `validate:"gte=0" json:"quantity"`
	InStock  bool  `json:"in_stock"`
}
