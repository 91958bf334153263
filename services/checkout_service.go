package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/payments"
	"github.com/anjiri1684/omnilearn/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutNotFound   = errors.New("checkout not found")
	ErrCheckoutBusy       = errors.New("payment is already being processed")
	ErrEMIUnavailable     = fmt.Errorf("emi is only available for orders of %d or more", payments.EMIMinimumAmount)
	ErrMissingBank        = errors.New("select a bank to continue")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
)

type CheckoutDelays struct {
	Processing   time.Duration
	Verification time.Duration
}

func DefaultCheckoutDelays() CheckoutDelays {
	return CheckoutDelays{Processing: 2500 * time.Millisecond, Verification: 1500 * time.Millisecond}
}

type CustomerDetails struct {
	Name  string
	Email string
	Phone string
}

type PaymentForm struct {
	Method string
	Card   payments.CardDetails
	Tenure int
	Bank   string
}

// FinalizedFunc observes checkouts that reached pending together with the
// transactions recorded for them.
type FinalizedFunc func(models.Checkout, []models.Transaction)

type CheckoutService struct {
	db          *gorm.DB
	delays      CheckoutDelays
	now         func() time.Time
	onFinalized FinalizedFunc
	wg          sync.WaitGroup
}

func NewCheckoutService(db *gorm.DB, delays CheckoutDelays, onFinalized FinalizedFunc) *CheckoutService {
	return &CheckoutService{db: db, delays: delays, now: time.Now, onFinalized: onFinalized}
}

func (s *CheckoutService) Delays() CheckoutDelays {
	return s.delays
}

// Wait blocks until every in-flight payment simulation has finished.
func (s *CheckoutService) Wait() {
	s.wg.Wait()
}

// Start snapshots the session cart into a new checkout at the details step.
func (s *CheckoutService) Start(session *models.Session) (*models.Checkout, error) {
	items, err := session.Items()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := Totals(items, "")
	checkout := models.Checkout{
		SessionID:      session.ID,
		Step:           models.StepDetails,
		OriginalTotal:  totals.OriginalTotal,
		FinalTotal:     totals.FinalTotal,
		OriginCourseID: items[0].CourseID,
	}
	if err := checkout.SetCartItems(items); err != nil {
		return nil, err
	}
	if err := s.db.Create(&checkout).Error; err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	return &checkout, nil
}

func (s *CheckoutService) Get(sessionID, id string) (*models.Checkout, error) {
	var checkout models.Checkout
	err := s.db.First(&checkout, "id = ? AND session_id = ?", id, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &checkout, nil
}

func (s *CheckoutService) ApplyCoupon(sessionID, id, code string) (*models.Checkout, AppliedCoupon, error) {
	checkout, err := s.editable(sessionID, id)
	if err != nil {
		return nil, AppliedCoupon{}, err
	}
	items, err := checkout.CartItems()
	if err != nil {
		return nil, AppliedCoupon{}, err
	}

	applied, err := ApplyCoupon(items, code)
	if err != nil {
		return nil, AppliedCoupon{}, err
	}

	totals := Totals(items, applied.Coupon.Code)
	err = s.update(checkout, checkout.Step, map[string]any{
		"coupon_code":    applied.Coupon.Code,
		"discount":       totals.Discount,
		"original_total": totals.OriginalTotal,
		"final_total":    totals.FinalTotal,
	})
	if err != nil {
		return nil, AppliedCoupon{}, err
	}
	return checkout, applied, nil
}

func (s *CheckoutService) RemoveCoupon(sessionID, id string) (*models.Checkout, error) {
	checkout, err := s.editable(sessionID, id)
	if err != nil {
		return nil, err
	}
	items, err := checkout.CartItems()
	if err != nil {
		return nil, err
	}

	totals := Totals(items, "")
	err = s.update(checkout, checkout.Step, map[string]any{
		"coupon_code":    nil,
		"discount":       totals.Discount,
		"original_total": totals.OriginalTotal,
		"final_total":    totals.FinalTotal,
	})
	if err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *CheckoutService) SubmitDetails(sessionID, id string, details CustomerDetails) (*models.Checkout, error) {
	phone, err := payments.SanitizePhone(details.Phone)
	if err != nil {
		return nil, err
	}

	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	next, err := NextStep(checkout.Step, EventSubmitDetails)
	if err != nil {
		return nil, err
	}

	err = s.update(checkout, next, map[string]any{
		"customer_name":  strings.TrimSpace(details.Name),
		"customer_email": strings.TrimSpace(details.Email),
		"customer_phone": phone,
	})
	if err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *CheckoutService) Back(sessionID, id string) (*models.Checkout, error) {
	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	if checkout.Processing {
		return nil, ErrCheckoutBusy
	}
	next, err := NextStep(checkout.Step, EventBack)
	if err != nil {
		return nil, err
	}
	if err := s.update(checkout, next, nil); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Cancel abandons the checkout and reports which course the buyer came from.
func (s *CheckoutService) Cancel(sessionID, id string) (*models.Checkout, error) {
	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	if checkout.Processing {
		return nil, ErrCheckoutBusy
	}
	next, err := NextStep(checkout.Step, EventCancel)
	if err != nil {
		return nil, err
	}
	if err := s.update(checkout, next, nil); err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *CheckoutService) PaymentOptions(sessionID, id string, merchant models.MerchantSettings) (payments.PaymentLinks, error) {
	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return payments.PaymentLinks{}, err
	}
	if checkout.Step != models.StepPayment {
		return payments.PaymentLinks{}, fmt.Errorf("%w: payment options need the payment step, checkout is at %s", ErrInvalidTransition, checkout.Step)
	}
	return payments.BuildPaymentLinks(merchant, checkout.FinalTotal), nil
}

// Pay starts the simulated payment. UPI confirmations move straight to
// verification; the other methods first spend the processing delay with the
// checkout marked as processing. Every method ends in pending.
func (s *CheckoutService) Pay(sessionID, id string, form PaymentForm) (*models.Checkout, error) {
	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	if checkout.Processing {
		return nil, ErrCheckoutBusy
	}
	if checkout.Step != models.StepPayment {
		return nil, fmt.Errorf("%w: pay on %s", ErrInvalidTransition, checkout.Step)
	}
	tenure, err := validatePayment(checkout, form)
	if err != nil {
		return nil, err
	}

	method := strings.ToLower(form.Method)
	if method == models.PaymentUPI {
		next, _ := NextStep(checkout.Step, EventPaymentConfirmed)
		err = s.update(checkout, next, map[string]any{
			"payment_method":  method,
			"transaction_ref": payments.ManualUPIReference,
		})
	} else {
		err = s.update(checkout, checkout.Step, map[string]any{
			"processing":     true,
			"payment_method": method,
			"emi_tenure":     tenure,
		})
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Checkout %s: %s payment started for %.2f", checkout.ID, method, checkout.FinalTotal)

	s.wg.Add(1)
	go s.runPayment(checkout.ID, method)

	return checkout, nil
}

// validatePayment checks the form for its method and returns the EMI tenure
// in months, which is zero for every other method.
func validatePayment(checkout *models.Checkout, form PaymentForm) (int, error) {
	switch strings.ToLower(form.Method) {
	case models.PaymentUPI:
		return 0, nil
	case models.PaymentCard:
		return 0, form.Card.Validate()
	case models.PaymentEMI:
		if decimal.NewFromFloat(checkout.FinalTotal).LessThan(decimal.NewFromInt(payments.EMIMinimumAmount)) {
			return 0, ErrEMIUnavailable
		}
		tenure, err := payments.EMITenure(form.Tenure)
		if err != nil {
			return 0, err
		}
		return tenure, form.Card.Validate()
	case models.PaymentNetbanking:
		if strings.TrimSpace(form.Bank) == "" {
			return 0, ErrMissingBank
		}
		return 0, nil
	}
	return 0, ErrUnsupportedPayment
}

func (s *CheckoutService) runPayment(id, method string) {
	defer s.wg.Done()

	if method != models.PaymentUPI {
		time.Sleep(s.delays.Processing)

		checkout, err := s.byID(id)
		if err != nil {
			log.Printf("🔥 Checkout %s vanished during processing: %v", id, err)
			return
		}
		next, _ := NextStep(models.StepPayment, EventPaymentConfirmed)
		err = s.update(checkout, next, map[string]any{
			"processing":      false,
			"transaction_ref": payments.GatewayReference(method, s.now().UnixMilli()),
		})
		if err != nil {
			log.Printf("🔥 Checkout %s could not enter verification: %v", id, err)
			return
		}
	}

	time.Sleep(s.delays.Verification)
	s.finalize(id)
}

// finalize records one pending transaction per cart item and parks the
// checkout at pending. A failed write is recorded on the checkout but does
// not hold the buyer back.
func (s *CheckoutService) finalize(id string) {
	checkout, err := s.byID(id)
	if err != nil {
		log.Printf("🔥 Checkout %s vanished before verification finished: %v", id, err)
		return
	}

	txns, recordErr := s.recordTransactions(checkout)
	updates := map[string]any{}
	if recordErr != nil {
		log.Printf("🔥 Failed to record transactions for checkout %s: %v", id, recordErr)
		updates["record_error"] = recordErr.Error()
	}

	next, _ := NextStep(checkout.Step, EventVerified)
	if err := s.update(checkout, next, updates); err != nil {
		log.Printf("🔥 Checkout %s could not reach pending: %v", id, err)
		return
	}

	if err := s.clearCart(checkout.SessionID); err != nil {
		log.Printf("⚠️ Failed to clear cart for session %s: %v", checkout.SessionID, err)
	}

	log.Printf("✅ Checkout %s pending approval with %d transaction(s)", id, len(txns))
	if s.onFinalized != nil && recordErr == nil {
		s.onFinalized(*checkout, txns)
	}
}

func (s *CheckoutService) recordTransactions(checkout *models.Checkout) ([]models.Transaction, error) {
	items, err := checkout.CartItems()
	if err != nil {
		return nil, err
	}

	date := s.now().UTC()
	txns := make([]models.Transaction, 0, len(items))
	for _, item := range items {
		txns = append(txns, models.Transaction{
			OrderID:        utils.OrderNumber(),
			TransactionRef: checkout.TransactionRef,
			CheckoutID:     checkout.ID,
			CourseID:       item.CourseID,
			CourseTitle:    item.Title,
			Amount:         checkout.FinalTotal,
			OriginalAmount: checkout.OriginalTotal,
			CouponCode:     checkout.CouponCode,
			Date:           date,
			CustomerName:   checkout.CustomerName,
			CustomerEmail:  checkout.CustomerEmail,
			CustomerPhone:  checkout.CustomerPhone,
			PaymentMethod:  checkout.PaymentMethod,
			EMITenure:      checkout.EMITenure,
			Status:         models.TransactionPending,
			ApprovalStatus: models.ApprovalPending,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&txns).Error
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *CheckoutService) clearCart(sessionID string) error {
	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return err
	}
	if err := session.SetItems(nil); err != nil {
		return err
	}
	return s.db.Model(&session).Update("cart", session.Cart).Error
}

// editable loads a checkout whose coupon may still change.
func (s *CheckoutService) editable(sessionID, id string) (*models.Checkout, error) {
	checkout, err := s.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	if checkout.Processing {
		return nil, ErrCheckoutBusy
	}
	if checkout.Step != models.StepDetails && checkout.Step != models.StepPayment {
		return nil, fmt.Errorf("%w: coupons cannot change at %s", ErrInvalidTransition, checkout.Step)
	}
	return checkout, nil
}

func (s *CheckoutService) byID(id string) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := s.db.First(&checkout, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checkout, nil
}

// update moves checkout to next only if nobody else moved it first, then
// reloads it.
func (s *CheckoutService) update(checkout *models.Checkout, next models.CheckoutStep, fields map[string]any) error {
	values := map[string]any{"step": next}
	for k, v := range fields {
		values[k] = v
	}

	res := s.db.Model(&models.Checkout{}).
		Where("id = ? AND step = ? AND processing = ?", checkout.ID, checkout.Step, checkout.Processing).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update checkout %s: %w", checkout.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: checkout %s changed concurrently", ErrInvalidTransition, checkout.ID)
	}
	return s.db.First(checkout, "id = ?", checkout.ID).Error
}
