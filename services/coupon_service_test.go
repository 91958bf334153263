package services

import (
	"testing"

	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64, coupons ...models.Coupon) models.CartItem {
	return models.CartItem{CartID: id, CourseID: id, Title: "Course " + id, Price: price, Coupons: coupons}
}

func percent(code string, v float64) models.Coupon {
	return models.Coupon{Code: code, Type: models.CouponPercent, Value: v, IsActive: true}
}

func flat(code string, v float64) models.Coupon {
	return models.Coupon{Code: code, Type: models.CouponFlat, Value: v, IsActive: true}
}

func TestApplyCouponPercent(t *testing.T) {
	cart := []models.CartItem{item("c1", 1000, percent("X10", 10))}

	applied, err := ApplyCoupon(cart, "x10")
	require.NoError(t, err)
	assert.Equal(t, "X10", applied.Coupon.Code)
	assert.Equal(t, 100.0, applied.Discount)

	totals := Totals(cart, applied.Coupon.Code)
	assert.Equal(t, 900.0, totals.FinalTotal)
}

func TestApplyCouponFlatClampsToMinimum(t *testing.T) {
	cart := []models.CartItem{item("c1", 300, flat("FLAT500", 500))}

	applied, err := ApplyCoupon(cart, "FLAT500")
	require.NoError(t, err)
	assert.Equal(t, 500.0, applied.Discount)
	assert.Equal(t, 1.0, Totals(cart, "FLAT500").FinalTotal)
}

func TestApplyCouponReappliedToEveryListingItem(t *testing.T) {
	cart := []models.CartItem{
		item("a", 1000, percent("SAVE", 10)),
		item("b", 2000),
		item("c", 500, flat("SAVE", 50)),
	}

	applied, err := ApplyCoupon(cart, "save")
	require.NoError(t, err)
	assert.Equal(t, models.CouponPercent, applied.Coupon.Type, "first match in cart order wins")
	// 10% of 1000 on item a, flat 50 on item c, nothing on b.
	assert.Equal(t, 150.0, applied.Discount)
}

func TestApplyCouponUnknownOrInactive(t *testing.T) {
	inactive := percent("OLD", 30)
	inactive.IsActive = false
	cart := []models.CartItem{item("a", 1000, percent("X10", 10), inactive)}

	for _, code := range []string{"", "NOPE", "OLD", "X1"} {
		_, err := ApplyCoupon(cart, code)
		assert.ErrorIs(t, err, ErrInvalidCoupon, code)
	}
}

func TestComputeDiscountMatchesSumOverItems(t *testing.T) {
	cart := []models.CartItem{
		item("a", 4999, percent("P", 15)),
		item("b", 1234, percent("P", 15)),
		item("c", 700, flat("Q", 100)),
	}

	want := decimal.NewFromInt(4999).Mul(decimal.NewFromInt(15)).Div(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(1234).Mul(decimal.NewFromInt(15)).Div(decimal.NewFromInt(100)))
	assert.True(t, want.Equal(ComputeDiscount(cart, "p")))
	assert.True(t, decimal.NewFromInt(100).Equal(ComputeDiscount(cart, "Q")))
}

func TestFinalTotal(t *testing.T) {
	cart := []models.CartItem{item("a", 1000), item("b", 500)}

	assert.True(t, decimal.NewFromInt(1500).Equal(FinalTotal(cart, decimal.Zero)))
	assert.True(t, decimal.NewFromInt(1).Equal(FinalTotal(cart, decimal.NewFromInt(1500))))
	assert.True(t, decimal.NewFromInt(1).Equal(FinalTotal(nil, decimal.Zero)))
}

func TestValidateCouponCode(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Create(&models.Course{ID: "c1", Title: "Go", Price: 100, Coupons: []models.Coupon{
		percent("WELCOME50", 50),
		{Code: "EXPIRED", Type: models.CouponFlat, Value: 10, IsActive: false},
	}}).Error)

	c, err := ValidateCouponCode(db, "welcome50")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.CourseID)

	_, err = ValidateCouponCode(db, "expired")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}
