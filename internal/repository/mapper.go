package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/Pradipta/lokapasar/cart/pkg/response"
	productResponse "github.com/Pradipta/lokapasar/product/pkg/response"
)

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		SellerId:    p.SellerID,
		Name:        p.Name,
		ImageUrl:    p.ImageUrl,
		Price:       numericToDecimal(p.Price),
		IsFlashSale: p.IsFlashSale,
		FlashPrice:  numericToDecimal(p.FlashPrice),
		Quantity:    p.Quantity,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (r FindCartItemsByUserIdRow) Response() cartResponse.CartItem {
	return cartResponse.CartItem{
		ID:            r.ID,
		ProductId:     r.ProductID,
		SellerId:      r.SellerID,
		Name:          r.Name,
		ImageUrl:      r.ImageUrl,
		Price:         numericToDecimal(r.Price),
		IsFlashSale:   r.IsFlashSale,
		FlashPrice:    numericToDecimal(r.FlashPrice),
		Quantity:      r.Quantity,
		StockQuantity: r.StockQuantity,
		InStock:       r.InStock,
		CreatedAt:     r.CreatedAt.Time,
		UpdatedAt:     r.UpdatedAt.Time,
	}
}

func CartResponse(userId uuid.UUID, rows []FindCartItemsByUserIdRow) cartResponse.Cart {
	items := make([]cartResponse.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Response())
	}
	return cartResponse.Cart{UserId: userId, CartItems: items}
}
