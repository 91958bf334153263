package jobs

import (
	"log"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/services"
	"gorm.io/gorm"
)

const staleCheckoutAge = 24 * time.Hour

func CleanupSessions() {
	cleanupSessions(database.DB, time.Now(), config.ConfigDuration("SESSION_TTL", 720*time.Hour))
}

func cleanupSessions(db *gorm.DB, now time.Time, sessionTTL time.Duration) {
	log.Println("Running job: CleanupSessions...")

	abandoned, err := services.AbandonStaleCheckouts(db, now.Add(-staleCheckoutAge))
	if err != nil {
		log.Printf("Error cancelling stale checkouts: %v", err)
	} else if abandoned > 0 {
		log.Printf("Cancelled %d abandoned checkouts", abandoned)
	}

	purged, err := services.PurgeIdleSessions(db, now.Add(-sessionTTL))
	if err != nil {
		log.Printf("Error purging idle sessions: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d idle sessions", purged)
	}
}
