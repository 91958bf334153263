package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/omnilearn/payments"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

// serviceError maps domain errors onto HTTP statuses. Anything unknown is
// logged and reported as a 500 without leaking details.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrCheckoutNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrCourseExists),
		errors.Is(err, services.ErrDuplicateCoupon),
		errors.Is(err, services.ErrAlreadyDecided),
		errors.Is(err, services.ErrCheckoutBusy):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCoupon),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrEMIUnavailable),
		errors.Is(err, services.ErrMissingBank),
		errors.Is(err, services.ErrUnsupportedPayment),
		errors.Is(err, payments.ErrInvalidPhone),
		errors.Is(err, payments.ErrInvalidTenure),
		errors.Is(err, payments.ErrInvalidCard):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrShortLinkExhausted):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("🔥 %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
