package handlers

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/notifications"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/anjiri1684/omnilearn/websocket"
	"github.com/gofiber/fiber/v2"
)

// ApprovalHandler reviews pending transactions. Receipt rendering and
// customer emails run after the response is sent.
type ApprovalHandler struct {
	Receipts *services.ReceiptIssuer
	Feed     *websocket.Hub
	Notify   func(models.Transaction)
}

func NewApprovalHandler(receipts *services.ReceiptIssuer, feed *websocket.Hub) *ApprovalHandler {
	h := &ApprovalHandler{Receipts: receipts, Feed: feed}
	h.Notify = h.notifyCustomer
	return h
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"max=500"`
}

func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txn, err := services.DecideTransaction(database.DB, c.Params("ref"), req.Decision, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	log.Printf("✅ Transaction %s %sd", txn.OrderID, req.Decision)

	if h.Feed != nil {
		h.Feed.Publish(websocket.EventTransactionDecided, []models.Transaction{*txn})
	}
	if h.Notify != nil {
		go h.Notify(*txn)
	}

	return c.JSON(txn)
}

func (h *ApprovalHandler) notifyCustomer(txn models.Transaction) {
	if txn.ApprovalStatus == models.ApprovalApproved && h.Receipts != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		url, err := h.Receipts.Issue(ctx, txn)
		cancel()
		if err != nil {
			log.Printf("⚠️ Receipt for order %s not issued: %v", txn.OrderID, err)
		} else {
			txn.ReceiptURL = &url
		}
	}

	subject, body, err := notifications.PaymentDecisionEmail(txn)
	if err != nil {
		log.Printf("🔥 %v", err)
		return
	}
	notifications.SendEmail(txn.CustomerName, txn.CustomerEmail, subject, body)
}
