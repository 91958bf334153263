package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CheckoutStep string

const (
	StepDetails      CheckoutStep = "details"
	StepPayment      CheckoutStep = "payment"
	StepVerification CheckoutStep = "verification"
	StepPending      CheckoutStep = "pending"
	StepSuccess      CheckoutStep = "success"
	StepCancelled    CheckoutStep = "cancelled"
)

const (
	PaymentUPI        = "upi"
	PaymentCard       = "card"
	PaymentEMI        = "emi"
	PaymentNetbanking = "netbanking"
)

type Checkout struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	SessionID      string         `gorm:"size:36;index;not null" json:"session_id"`
	Step           CheckoutStep   `gorm:"size:20;index;not null" json:"step"`
	Processing     bool           `gorm:"not null" json:"processing"`
	Items          datatypes.JSON `json:"items"`
	CouponCode     *string        `gorm:"size:50" json:"coupon_code,omitempty"`
	Discount       float64        `gorm:"type:numeric(10,2)" json:"discount"`
	OriginalTotal  float64        `gorm:"type:numeric(10,2)" json:"original_total"`
	FinalTotal     float64        `gorm:"type:numeric(10,2)" json:"final_total"`
	CustomerName   string         `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerEmail  string         `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone  string         `gorm:"size:30" json:"customer_phone,omitempty"`
	PaymentMethod  string         `gorm:"size:20" json:"payment_method,omitempty"`
	EMITenure      int            `gorm:"column:emi_tenure" json:"emi_tenure,omitempty"`
	TransactionRef string         `gorm:"size:100" json:"transaction_ref,omitempty"`
	OriginCourseID string         `gorm:"size:64" json:"origin_course_id"`
	RecordError    string         `gorm:"type:text" json:"record_error,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (c *Checkout) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Checkout) CartItems() ([]CartItem, error) {
	var items []CartItem
	if err := json.Unmarshal(c.Items, &items); err != nil {
		return nil, fmt.Errorf("decode items for checkout %s: %w", c.ID, err)
	}
	return items, nil
}

func (c *Checkout) SetCartItems(items []CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.Items = datatypes.JSON(raw)
	return nil
}
