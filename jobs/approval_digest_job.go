package jobs

import (
	"log"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/notifications"
	"github.com/anjiri1684/omnilearn/services"
	"gorm.io/gorm"
)

type mailer func(toName, toEmail, subject, html string)

func SendApprovalDigest() {
	sendApprovalDigest(database.DB, config.Config("ADMIN_EMAIL"), config.Config("ADMIN_FULL_NAME"), notifications.SendEmail)
}

func sendApprovalDigest(db *gorm.DB, adminEmail, adminName string, send mailer) {
	log.Println("Running job: SendApprovalDigest...")
	if adminEmail == "" {
		return
	}

	pending, _, err := services.ListTransactions(db, services.TransactionFilter{
		ApprovalStatus: models.ApprovalPending,
		Limit:          100,
	})
	if err != nil {
		log.Printf("Error loading pending approvals: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	subject, body, err := notifications.ApprovalDigestEmail(pending)
	if err != nil {
		log.Printf("🔥 %v", err)
		return
	}
	send(adminName, adminEmail, subject, body)
}
