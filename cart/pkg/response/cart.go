package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID            uuid.UUID       `json:"id"`
	ProductId     uuid.UUID       `json:"product_id"`
	SellerId      uuid.UUID       `json:"seller_id"`
	Name          string          `json:"name"`
	ImageUrl      string          `json:"image_url"`
	Price         decimal.Decimal `json:"price"`
	IsFlashSale   bool            `json:"is_flash_sale"`
	FlashPrice    decimal.Decimal `json:"flash_price"`
	Quantity      int32           `json:"quantity"`
	StockQuantity int32           `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Cart struct {
	UserId    uuid.UUID  `json:"user_id"`
	CartItems []CartItem `json:"cart_items"`
}

type SellerGroup struct {
	SellerId    uuid.UUID       `json:"seller_id"`
	CartItems   []CartItem      `json:"cart_items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
}

type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalItems  int32           `json:"total_items"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	Total       decimal.Decimal `json:"total"`
}

// EffectivePrice is the flash price when the product is flash-sale flagged
// with a positive flash price, the base price otherwise.
func (i CartItem) EffectivePrice() decimal.Decimal {
	if i.IsFlashSale && i.FlashPrice.IsPositive() {
		return i.FlashPrice
	}
	return i.Price
}

func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.CartItems {
		subtotal = subtotal.Add(item.EffectivePrice().Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return subtotal
}

func (c Cart) TotalItems() int32 {
	var total int32
	for _, item := range c.CartItems {
		total += item.Quantity
	}
	return total
}

// GroupBySeller groups cart items by owning seller in order of first
// appearance. Shipping is a zero placeholder, it is computed elsewhere.
func (c Cart) GroupBySeller() []SellerGroup {
	indexes := map[uuid.UUID]int{}
	groups := []SellerGroup{}
	for _, item := range c.CartItems {
		idx, ok := indexes[item.SellerId]
		if !ok {
			idx = len(groups)
			indexes[item.SellerId] = idx
			groups = append(groups, SellerGroup{
				SellerId:    item.SellerId,
				ShippingFee: decimal.Zero,
				Subtotal:    decimal.Zero,
			})
		}
		groups[idx].CartItems = append(groups[idx].CartItems, item)
		groups[idx].Subtotal = groups[idx].Subtotal.
			Add(item.EffectivePrice().Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return groups
}

// Summarize derives the checkout totals. The platform fee is supplied by the
// caller, the cart never computes it.
func (c Cart) Summarize(platformFee decimal.Decimal) Summary {
	subtotal := c.Subtotal()
	return Summary{
		Subtotal:    subtotal,
		TotalItems:  c.TotalItems(),
		PlatformFee: platformFee,
		Total:       subtotal.Add(platformFee),
	}
}
