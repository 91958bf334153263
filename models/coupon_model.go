package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CouponPercent = "percent"
	CouponFlat    = "flat"
)

// Coupon belongs to exactly one course. Codes are only unique within that
// course's own list.
type Coupon struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	CourseID string  `gorm:"size:64;index;not null" json:"course_id" yaml:"-"`
	Code     string  `gorm:"size:50;not null" json:"code" yaml:"code"`
	Type     string  `gorm:"size:10;not null" json:"type" yaml:"type"`
	Value    float64 `gorm:"type:numeric(10,2);not null" json:"value" yaml:"value"`
	IsActive bool    `gorm:"not null" json:"is_active" yaml:"is_active"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Matches reports whether the coupon is active and carries code, ignoring case.
// Inactive coupons never match: an admin deactivating a code withdraws it from
// checkout immediately.
func (c Coupon) Matches(code string) bool {
	return c.IsActive && strings.EqualFold(strings.TrimSpace(c.Code), strings.TrimSpace(code))
}
