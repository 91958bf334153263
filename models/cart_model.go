package models

import (
	"errors"
	"fmt"
)

// CartItem is a snapshot of a course taken when it was added to the cart.
// Its price never follows later catalog edits.
type CartItem struct {
	CartID        string   `json:"cart_id"`
	CourseID      string   `json:"course_id"`
	Title         string   `json:"title"`
	Instructor    string   `json:"instructor"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"original_price,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Coupons       []Coupon `json:"coupons"`
}

func NewCartItem(course Course, cartID string) CartItem {
	coupons := make([]Coupon, len(course.Coupons))
	copy(coupons, course.Coupons)

	return CartItem{
		CartID:        cartID,
		CourseID:      course.ID,
		Title:         course.Title,
		Instructor:    course.Instructor,
		Price:         course.Price,
		OriginalPrice: course.OriginalPrice,
		Image:         course.Image,
		Category:      course.Category,
		Level:         course.Level,
		Coupons:       coupons,
	}
}

func (i CartItem) Validate() error {
	if i.CartID == "" {
		return errors.New("cart item is missing cart_id")
	}
	if i.CourseID == "" {
		return fmt.Errorf("cart item %s is missing course_id", i.CartID)
	}
	if i.Price < 0 {
		return fmt.Errorf("cart item %s has negative price", i.CartID)
	}
	for _, cp := range i.Coupons {
		if cp.Type != CouponPercent && cp.Type != CouponFlat {
			return fmt.Errorf("cart item %s has coupon %q with unknown type %q", i.CartID, cp.Code, cp.Type)
		}
	}
	return nil
}
