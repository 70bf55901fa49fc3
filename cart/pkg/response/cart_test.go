package response

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		item     CartItem
		expected decimal.Decimal
	}{
		{
			name: "given flash sale item with positive flash price should return flash price",
			item: CartItem{
				Price:       decimal.NewFromInt(25000),
				IsFlashSale: true,
				FlashPrice:  decimal.NewFromInt(19000),
			},
			expected: decimal.NewFromInt(19000),
		},
		{
			name: "given flash sale item with zero flash price should return base price",
			item: CartItem{
				Price:       decimal.NewFromInt(25000),
				IsFlashSale: true,
				FlashPrice:  decimal.Zero,
			},
			expected: decimal.NewFromInt(25000),
		},
		{
			name: "given flash sale item with negative flash price should return base price",
			item: CartItem{
				Price:       decimal.NewFromInt(25000),
				IsFlashSale: true,
				FlashPrice:  decimal.NewFromInt(-1),
			},
			expected: decimal.NewFromInt(25000),
		},
		{
			name: "given non flash sale item with flash price should return base price",
			item: CartItem{
				Price:       decimal.NewFromInt(25000),
				IsFlashSale: false,
				FlashPrice:  decimal.NewFromInt(19000),
			},
			expected: decimal.NewFromInt(25000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(
				t,
				tt.expected.Equal(tt.item.EffectivePrice()),
				"effective price should be %s got %s",
				tt.expected,
				tt.item.EffectivePrice(),
			)
		})
	}
}

func TestSubtotalAndTotalItems(t *testing.T) {
	tests := []struct {
		name               string
		cart               Cart
		expectedSubtotal   decimal.Decimal
		expectedTotalItems int32
	}{
		{
			name:               "given empty cart should return zero subtotal and zero items",
			cart:               Cart{UserId: uuid.New(), CartItems: []CartItem{}},
			expectedSubtotal:   decimal.Zero,
			expectedTotalItems: 0,
		},
		{
			name: "given mixed flash sale and regular items should sum effective price times quantity",
			cart: Cart{
				UserId: uuid.New(),
				CartItems: []CartItem{
					{
						Price:       decimal.NewFromInt(55000),
						IsFlashSale: false,
						Quantity:    2,
					},
					{
						Price:       decimal.NewFromInt(25000),
						IsFlashSale: true,
						FlashPrice:  decimal.NewFromInt(19000),
						Quantity:    3,
					},
				},
			},
			expectedSubtotal:   decimal.NewFromInt(110000 + 57000),
			expectedTotalItems: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(
				t,
				tt.expectedSubtotal.Equal(tt.cart.Subtotal()),
				"subtotal should be %s got %s",
				tt.expectedSubtotal,
				tt.cart.Subtotal(),
			)
			assert.Equal(t, tt.expectedTotalItems, tt.cart.TotalItems())
		})
	}
}

func TestGroupBySeller(t *testing.T) {
	sellerA := uuid.New()
	sellerB := uuid.New()
	cart := Cart{
		UserId: uuid.New(),
		CartItems: []CartItem{
			{SellerId: sellerA, Price: decimal.NewFromInt(10000), Quantity: 1},
			{SellerId: sellerB, Price: decimal.NewFromInt(20000), Quantity: 2},
			{SellerId: sellerA, Price: decimal.NewFromInt(5000), Quantity: 3},
		},
	}

	groups := cart.GroupBySeller()

	assert.Len(t, groups, 2, "should group into one entry per seller")
	assert.Equal(t, sellerA, groups[0].SellerId, "first seller seen should come first")
	assert.Equal(t, sellerB, groups[1].SellerId)
	assert.Len(t, groups[0].CartItems, 2)
	assert.Len(t, groups[1].CartItems, 1)

	assert.True(
		t,
		decimal.NewFromInt(25000).Equal(groups[0].Subtotal),
		"seller subtotal should be 25000 got %s",
		groups[0].Subtotal,
	)
	assert.True(
		t,
		decimal.NewFromInt(40000).Equal(groups[1].Subtotal),
		"seller subtotal should be 40000 got %s",
		groups[1].Subtotal,
	)

	grouped := 0
	for _, group := range groups {
		grouped += len(group.CartItems)
		assert.True(
			t,
			group.ShippingFee.IsZero(),
			"shipping fee should be zero until shipping is quoted",
		)
	}
	assert.Equal(t, len(cart.CartItems), grouped, "every cart item should land in a group")
}

func TestGroupBySellerEmptyCart(t *testing.T) {
	cart := Cart{UserId: uuid.New(), CartItems: []CartItem{}}
	assert.Empty(t, cart.GroupBySeller())
}

func TestSummarize(t *testing.T) {
	cart := Cart{
		UserId: uuid.New(),
		CartItems: []CartItem{
			{Price: decimal.NewFromInt(55000), Quantity: 2},
			{
				Price:       decimal.NewFromInt(78000),
				IsFlashSale: true,
				FlashPrice:  decimal.NewFromInt(65000),
				Quantity:    1,
			},
		},
	}

	summary := cart.Summarize(decimal.NewFromInt(1000))

	assert.True(
		t,
		decimal.NewFromInt(175000).Equal(summary.Subtotal),
		"subtotal should be 175000 got %s",
		summary.Subtotal,
	)
	assert.Equal(t, int32(3), summary.TotalItems)
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.PlatformFee))
	assert.True(
		t,
		decimal.NewFromInt(176000).Equal(summary.Total),
		"total should be subtotal plus platform fee got %s",
		summary.Total,
	)
}

func TestSummarizeEmptyCart(t *testing.T) {
	cart := Cart{UserId: uuid.New(), CartItems: []CartItem{}}

	summary := cart.Summarize(decimal.NewFromInt(1000))

	assert.True(t, summary.Subtotal.IsZero())
	assert.Equal(t, int32(0), summary.TotalItems)
	assert.True(
		t,
		decimal.NewFromInt(1000).Equal(summary.Total),
		"empty cart total should still carry the platform fee",
	)
}
