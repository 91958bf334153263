package handlers

import (
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/payments"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Service *services.CheckoutService
}

func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: service}
}

type CouponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type DetailsRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type CardRequest struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type PayRequest struct {
	Method string      `json:"method" validate:"required,oneof=upi card emi netbanking"`
	Card   CardRequest `json:"card"`
	Tenure int         `json:"tenure" validate:"omitempty,oneof=3 6 9 12"`
	Bank   string      `json:"bank"`
}

func (h *CheckoutHandler) sessionID(c *fiber.Ctx) string {
	return middleware.CurrentSession(c).ID
}

func (h *CheckoutHandler) Start(c *fiber.Ctx) error {
	checkout, err := h.Service.Start(middleware.CurrentSession(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}

func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	checkout, err := h.Service.Get(h.sessionID(c), c.Params("checkoutId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(checkout)
}

func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	checkout, applied, err := h.Service.ApplyCoupon(h.sessionID(c), c.Params("checkoutId"), req.Code)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"checkout": checkout, "coupon": applied.Coupon, "discount": applied.Discount})
}

func (h *CheckoutHandler) RemoveCoupon(c *fiber.Ctx) error {
	checkout, err := h.Service.RemoveCoupon(h.sessionID(c), c.Params("checkoutId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(checkout)
}

func (h *CheckoutHandler) SubmitDetails(c *fiber.Ctx) error {
	var req DetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	checkout, err := h.Service.SubmitDetails(h.sessionID(c), c.Params("checkoutId"), services.CustomerDetails{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(checkout)
}

func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	checkout, err := h.Service.Back(h.sessionID(c), c.Params("checkoutId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(checkout)
}

func (h *CheckoutHandler) PaymentOptions(c *fiber.Ctx) error {
	merchant, err := services.GetMerchantSettings(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	links, err := h.Service.PaymentOptions(h.sessionID(c), c.Params("checkoutId"), merchant)
	if err != nil {
		return serviceError(c, err)
	}
	plans := make([]fiber.Map, 0, len(payments.EMITenures))
	for _, months := range payments.EMITenures {
		plans = append(plans, fiber.Map{"months": months, "monthly": payments.EMIInstallment(links.Amount, months)})
	}
	return c.JSON(fiber.Map{
		"merchant":        merchant,
		"links":           links,
		"emi_available":   links.Amount >= payments.EMIMinimumAmount,
		"emi_minimum":     payments.EMIMinimumAmount,
		"emi_plans":       plans,
		"processing_time": h.Service.Delays().Processing.String(),
	})
}

// Pay accepts the payment and returns immediately; clients poll Get to follow
// the checkout through verification to pending.
func (h *CheckoutHandler) Pay(c *fiber.Ctx) error {
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	checkout, err := h.Service.Pay(h.sessionID(c), c.Params("checkoutId"), services.PaymentForm{
		Method: req.Method,
		Card: payments.CardDetails{
			Number: req.Card.Number,
			Name:   req.Card.Name,
			Expiry: req.Card.Expiry,
			CVV:    req.Card.CVV,
		},
		Tenure: req.Tenure,
		Bank:   req.Bank,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(checkout)
}

func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	checkout, err := h.Service.Cancel(h.sessionID(c), c.Params("checkoutId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"checkout": checkout,
		"view":     services.CourseDetailView{CourseID: checkout.OriginCourseID},
	})
}

// Steps lists the checkout steps in order for progress indicators.
func (h *CheckoutHandler) Steps(c *fiber.Ctx) error {
	return c.JSON([]models.CheckoutStep{
		models.StepDetails,
		models.StepPayment,
		models.StepVerification,
		models.StepPending,
	})
}
