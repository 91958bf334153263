package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceiptHTML(t *testing.T) {
	code := "FLAT500"
	txn := models.Transaction{
		OrderID:        "ORD-424242",
		TransactionRef: "CARD-GATEWAY-1700000000000",
		CourseTitle:    "Advanced Go <Programming>",
		Amount:         6500,
		OriginalAmount: 7000,
		CouponCode:     &code,
		Date:           time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		CustomerName:   "Asha",
		CustomerEmail:  "asha@example.com",
		PaymentMethod:  models.PaymentCard,
	}

	html, err := RenderReceiptHTML(txn, models.DefaultMerchantSettings())
	require.NoError(t, err)
	assert.Contains(t, html, "ORD-424242")
	assert.Contains(t, html, "Advanced Go &lt;Programming&gt;")
	assert.Contains(t, html, "Coupon FLAT500")
	assert.Contains(t, html, "-₹500.00")
	assert.Contains(t, html, "₹6500.00")
	assert.Contains(t, html, "March 1, 2025")
	assert.Contains(t, html, "Card")
}

func TestReceiptIssuerIssue(t *testing.T) {
	db := testdb.New(t)
	txn := pendingTxn(t, db, "", "ORD-777777", 1000)
	approved, err := DecideTransaction(db, txn.Key, DecisionApprove, "")
	require.NoError(t, err)

	issuer := NewReceiptIssuer(db, "")
	var renderedHTML string
	issuer.render = func(_ context.Context, html string) ([]byte, error) {
		renderedHTML = html
		return []byte("%PDF"), nil
	}
	issuer.upload = func(_ context.Context, pdf []byte, publicID string) (string, error) {
		assert.Equal(t, []byte("%PDF"), pdf)
		assert.Contains(t, publicID, approved.OrderID)
		return "https://cdn.example.com/r.pdf", nil
	}

	url, err := issuer.Issue(context.Background(), *approved)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/r.pdf", url)
	assert.Contains(t, renderedHTML, approved.OrderID)

	stored, err := FindTransaction(db, txn.Key)
	require.NoError(t, err)
	require.NotNil(t, stored.ReceiptURL)
	assert.Equal(t, url, *stored.ReceiptURL)
}

func TestReceiptIssuerRequiresApproval(t *testing.T) {
	db := testdb.New(t)
	txn := pendingTxn(t, db, "", "ORD-888888", 1000)

	issuer := NewReceiptIssuer(db, "")
	issuer.render = func(context.Context, string) ([]byte, error) { return nil, errors.New("should not render") }

	_, err := issuer.Issue(context.Background(), txn)
	assert.Error(t, err)
}
