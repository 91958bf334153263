package services

import (
	"errors"
	"strings"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidCoupon = errors.New("invalid code for these courses")

// MinimumTotal is the floor applied to any discounted cart total.
var MinimumTotal = decimal.NewFromInt(1)

type AppliedCoupon struct {
	Coupon   models.Coupon `json:"coupon"`
	Discount float64       `json:"discount"`
}

// ApplyCoupon resolves code against the coupons carried by the cart items.
// The first active match in cart order wins and its discount is then
// computed over every item that lists the same code.
func ApplyCoupon(items []models.CartItem, code string) (AppliedCoupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return AppliedCoupon{}, ErrInvalidCoupon
	}

	for _, item := range items {
		for _, cp := range item.Coupons {
			if cp.Matches(code) {
				return AppliedCoupon{
					Coupon:   cp,
					Discount: toAmount(ComputeDiscount(items, cp.Code)),
				}, nil
			}
		}
	}
	return AppliedCoupon{}, ErrInvalidCoupon
}

func ComputeDiscount(items []models.CartItem, code string) decimal.Decimal {
	total := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for _, item := range items {
		for _, cp := range item.Coupons {
			if !cp.Matches(code) {
				continue
			}
			value := decimal.NewFromFloat(cp.Value)
			switch cp.Type {
			case models.CouponPercent:
				total = total.Add(decimal.NewFromInt(item.Price).Mul(value).Div(hundred))
			case models.CouponFlat:
				total = total.Add(value)
			}
			break
		}
	}
	return total
}

func OriginalTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromInt(item.Price))
	}
	return total
}

func FinalTotal(items []models.CartItem, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(MinimumTotal, OriginalTotal(items).Sub(discount))
}

type CartTotals struct {
	OriginalTotal float64 `json:"original_total"`
	Discount      float64 `json:"discount"`
	FinalTotal    float64 `json:"final_total"`
}

// Totals prices the cart, applying code when it is non-empty.
func Totals(items []models.CartItem, code string) CartTotals {
	discount := decimal.Zero
	if code != "" {
		discount = ComputeDiscount(items, code)
	}
	return CartTotals{
		OriginalTotal: toAmount(OriginalTotal(items)),
		Discount:      toAmount(discount),
		FinalTotal:    toAmount(FinalTotal(items, discount)),
	}
}

// ValidateCouponCode looks an active coupon up across the whole catalog.
func ValidateCouponCode(db *gorm.DB, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.Where("UPPER(code) = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}
	return &coupon, nil
}

func toAmount(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
