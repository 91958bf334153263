package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionSuccess = "success"
	TransactionFailed  = "failed"
	TransactionPending = "pending"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Transaction is one purchased course from a completed checkout. Every
// transaction of a checkout shares its amount, reference and date.
type Transaction struct {
	Key            string    `gorm:"column:txn_key;primaryKey;size:36" json:"key"`
	OrderID        string    `gorm:"size:20;index;not null" json:"order_id"`
	TransactionRef string    `gorm:"size:100;index" json:"transaction_ref"`
	CheckoutID     string    `gorm:"size:36;index" json:"checkout_id"`
	CourseID       string    `gorm:"size:64;index" json:"course_id"`
	CourseTitle    string    `gorm:"size:255" json:"course_title"`
	Amount         float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	OriginalAmount float64   `gorm:"type:numeric(10,2)" json:"original_amount"`
	CouponCode     *string   `gorm:"size:50" json:"coupon_code,omitempty"`
	Date           time.Time `gorm:"index" json:"date"`
	CustomerName   string    `gorm:"size:255" json:"customer_name"`
	CustomerEmail  string    `gorm:"size:255" json:"customer_email"`
	CustomerPhone  string    `gorm:"size:30" json:"customer_phone"`
	PaymentMethod  string    `gorm:"size:20" json:"payment_method"`
	EMITenure      int       `gorm:"column:emi_tenure" json:"emi_tenure,omitempty"`
	Status         string    `gorm:"size:20;index;not null" json:"status"`
	ApprovalStatus string    `gorm:"size:20;index;not null" json:"approval_status"`
	FailureReason  *string   `gorm:"type:text" json:"failure_reason,omitempty"`
	ReceiptURL     *string   `gorm:"type:text" json:"receipt_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Key == "" {
		t.Key = uuid.NewString()
	}
	return nil
}
