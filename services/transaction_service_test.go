package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pendingTxn(t *testing.T, db *gorm.DB, checkoutID, orderID string, amount float64) models.Transaction {
	t.Helper()
	txn := models.Transaction{
		OrderID:        orderID,
		CheckoutID:     checkoutID,
		CourseID:       "c1",
		CourseTitle:    "Course c1",
		Amount:         amount,
		OriginalAmount: amount,
		Date:           time.Now().UTC(),
		CustomerEmail:  "buyer@example.com",
		Status:         models.TransactionPending,
		ApprovalStatus: models.ApprovalPending,
	}
	require.NoError(t, db.Create(&txn).Error)
	return txn
}

func TestDecideTransactionApprove(t *testing.T) {
	db := testdb.New(t)
	txn := pendingTxn(t, db, "", "ORD-111111", 900)

	got, err := DecideTransaction(db, txn.Key, DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionSuccess, got.Status)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)

	_, err = DecideTransaction(db, txn.Key, DecisionReject, "")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestDecideTransactionRejectByOrderID(t *testing.T) {
	db := testdb.New(t)
	pendingTxn(t, db, "", "ORD-222222", 900)

	got, err := DecideTransaction(db, "ORD-222222", DecisionReject, "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionFailed, got.Status)
	assert.Equal(t, models.ApprovalRejected, got.ApprovalStatus)
	require.NotNil(t, got.FailureReason)
	assert.Equal(t, defaultRejectionReason, *got.FailureReason)
}

func TestDecideTransactionUnknown(t *testing.T) {
	db := testdb.New(t)

	_, err := DecideTransaction(db, "nope", DecisionApprove, "")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestApprovingWholeCheckoutMarksSuccess(t *testing.T) {
	db := testdb.New(t)
	co := models.Checkout{SessionID: "s1", Step: models.StepPending}
	require.NoError(t, db.Create(&co).Error)
	a := pendingTxn(t, db, co.ID, "ORD-100001", 7000)
	b := pendingTxn(t, db, co.ID, "ORD-100002", 7000)

	_, err := DecideTransaction(db, a.Key, DecisionApprove, "")
	require.NoError(t, err)
	require.NoError(t, db.First(&co, "id = ?", co.ID).Error)
	assert.Equal(t, models.StepPending, co.Step)

	_, err = DecideTransaction(db, b.Key, DecisionApprove, "")
	require.NoError(t, err)
	require.NoError(t, db.First(&co, "id = ?", co.ID).Error)
	assert.Equal(t, models.StepSuccess, co.Step)
}

func TestDashboardStatsCountsCheckoutOnce(t *testing.T) {
	db := testdb.New(t)
	seedCourse(t, db, "c1", 100)
	a := pendingTxn(t, db, "co-1", "ORD-100001", 7000)
	b := pendingTxn(t, db, "co-1", "ORD-100002", 7000)
	c := pendingTxn(t, db, "co-2", "ORD-100003", 450.5)
	pendingTxn(t, db, "co-3", "ORD-100004", 999)

	for _, key := range []string{a.Key, b.Key, c.Key} {
		_, err := DecideTransaction(db, key, DecisionApprove, "")
		require.NoError(t, err)
	}

	stats, err := GetDashboardStats(db)
	require.NoError(t, err)
	assert.Equal(t, 7450.5, stats.TotalRevenue)
	assert.Equal(t, int64(3), stats.SuccessfulOrders)
	assert.Equal(t, int64(1), stats.PendingApprovals)
	assert.Equal(t, int64(1), stats.TotalCourses)
	assert.Len(t, stats.RecentTransactions, 4)
}

func TestListTransactionsFilters(t *testing.T) {
	db := testdb.New(t)
	for i := 0; i < 5; i++ {
		pendingTxn(t, db, "", "ORD-30000"+string(rune('0'+i)), 10)
	}
	first := pendingTxn(t, db, "", "ORD-399999", 10)
	_, err := DecideTransaction(db, first.Key, DecisionReject, "wrong UTR")
	require.NoError(t, err)

	txns, total, err := ListTransactions(db, TransactionFilter{ApprovalStatus: models.ApprovalPending, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, txns, 2)

	txns, total, err = ListTransactions(db, TransactionFilter{Status: models.TransactionFailed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
	assert.Equal(t, "wrong UTR", *txns[0].FailureReason)
}
