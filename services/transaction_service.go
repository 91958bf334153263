package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

const defaultRejectionReason = "Payment could not be verified"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyDecided      = errors.New("transaction has already been reviewed")
)

// FindTransaction looks up by store key first and falls back to the order id.
func FindTransaction(db *gorm.DB, ref string) (*models.Transaction, error) {
	var txn models.Transaction
	err := db.First(&txn, "txn_key = ?", ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.First(&txn, "order_id = ?", ref).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// DecideTransaction applies an admin review: approve maps to success and
// reject to failed. Once every transaction of a checkout is approved the
// checkout itself is marked successful.
func DecideTransaction(db *gorm.DB, ref, decision, reason string) (*models.Transaction, error) {
	var decided *models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		txn, err := FindTransaction(tx, ref)
		if err != nil {
			return err
		}
		if txn.ApprovalStatus != models.ApprovalPending {
			return ErrAlreadyDecided
		}

		updates := map[string]any{}
		switch decision {
		case DecisionApprove:
			updates["status"] = models.TransactionSuccess
			updates["approval_status"] = models.ApprovalApproved
		case DecisionReject:
			if strings.TrimSpace(reason) == "" {
				reason = defaultRejectionReason
			}
			updates["status"] = models.TransactionFailed
			updates["approval_status"] = models.ApprovalRejected
			updates["failure_reason"] = reason
		default:
			return fmt.Errorf("unknown decision %q", decision)
		}

		res := tx.Model(&models.Transaction{}).
			Where("txn_key = ? AND approval_status = ?", txn.Key, models.ApprovalPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyDecided
		}

		if decision == DecisionApprove && txn.CheckoutID != "" {
			if err := completeCheckout(tx, txn.CheckoutID); err != nil {
				return err
			}
		}

		decided, err = FindTransaction(tx, txn.Key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

func completeCheckout(tx *gorm.DB, checkoutID string) error {
	var open int64
	err := tx.Model(&models.Transaction{}).
		Where("checkout_id = ? AND approval_status <> ?", checkoutID, models.ApprovalApproved).
		Count(&open).Error
	if err != nil || open > 0 {
		return err
	}

	next, err := NextStep(models.StepPending, EventApproved)
	if err != nil {
		return err
	}
	return tx.Model(&models.Checkout{}).
		Where("id = ? AND step = ?", checkoutID, models.StepPending).
		Update("step", next).Error
}

type TransactionFilter struct {
	Status         string
	ApprovalStatus string
	Page           int
	Limit          int
}

func ListTransactions(db *gorm.DB, f TransactionFilter) ([]models.Transaction, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	query := db.Model(&models.Transaction{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", f.ApprovalStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	err := query.Order("date desc").Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(&txns).Error
	return txns, total, err
}

func TransactionsBetween(db *gorm.DB, start, end time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Where("date BETWEEN ? AND ?", start, end).Order("date desc").Find(&txns).Error
	return txns, err
}

type DashboardStats struct {
	TotalRevenue       float64              `json:"total_revenue"`
	TotalCourses       int64                `json:"total_courses"`
	PendingApprovals   int64                `json:"pending_approvals"`
	SuccessfulOrders   int64                `json:"successful_orders"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

func GetDashboardStats(db *gorm.DB) (DashboardStats, error) {
	var stats DashboardStats

	if err := db.Model(&models.Course{}).Count(&stats.TotalCourses).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Transaction{}).Where("approval_status = ?", models.ApprovalPending).Count(&stats.PendingApprovals).Error; err != nil {
		return stats, err
	}

	var successful []models.Transaction
	if err := db.Select("txn_key", "checkout_id", "amount").Where("status = ?", models.TransactionSuccess).Find(&successful).Error; err != nil {
		return stats, err
	}
	stats.SuccessfulOrders = int64(len(successful))
	stats.TotalRevenue = Revenue(successful)

	if err := db.Order("date desc").Limit(10).Find(&stats.RecentTransactions).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// Revenue sums successful amounts. Transactions from one checkout all carry
// the checkout total, so each checkout is counted once.
func Revenue(txns []models.Transaction) float64 {
	seen := map[string]bool{}
	total := decimal.Zero
	for _, t := range txns {
		group := t.CheckoutID
		if group == "" {
			group = "key:" + t.Key
		}
		if seen[group] {
			continue
		}
		seen[group] = true
		total = total.Add(decimal.NewFromFloat(t.Amount))
	}
	return toAmount(total)
}
