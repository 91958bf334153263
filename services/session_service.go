package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/utils"
	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// LoadSession returns the session for id, creating a fresh one when id is
// empty or unknown. A stored cart that fails validation is discarded.
func LoadSession(db *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	if id != "" {
		err := db.First(&session, "id = ?", id).Error
		switch {
		case err == nil:
			if _, err := session.Items(); err != nil {
				log.Printf("⚠️ Discarding malformed cart: %v", err)
				if err := session.SetItems(nil); err != nil {
					return nil, err
				}
				session.LastSeenAt = time.Now()
				return &session, SaveSession(db, &session)
			}
			return &session, touchSession(db, &session, time.Now())
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	session = models.Session{LastSeenAt: time.Now()}
	if err := session.SetItems(nil); err != nil {
		return nil, err
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

func SaveSession(db *gorm.DB, session *models.Session) error {
	return db.Save(session).Error
}

// touchSession bumps last_seen_at only. The cart column is left alone so a
// request racing checkout finalisation cannot restore a cleared cart.
func touchSession(db *gorm.DB, session *models.Session, at time.Time) error {
	session.LastSeenAt = at
	return db.Model(session).UpdateColumn("last_seen_at", at).Error
}

// AddToCart appends a price-frozen snapshot of the course.
func AddToCart(db *gorm.DB, session *models.Session, courseID string) ([]models.CartItem, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	items, err := session.Items()
	if err != nil {
		return nil, err
	}

	items = append(items, models.NewCartItem(*course, utils.CartID()))
	if err := session.SetItems(items); err != nil {
		return nil, err
	}
	return items, SaveSession(db, session)
}

func RemoveFromCart(db *gorm.DB, session *models.Session, cartID string) ([]models.CartItem, error) {
	items, err := session.Items()
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.CartID == cartID && !removed {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, ErrCartItemNotFound
	}

	if err := session.SetItems(kept); err != nil {
		return nil, err
	}
	return kept, SaveSession(db, session)
}

func ClearCart(db *gorm.DB, session *models.Session) error {
	if err := session.SetItems(nil); err != nil {
		return err
	}
	return SaveSession(db, session)
}

// BuyNow replaces the whole cart with a single course.
func BuyNow(db *gorm.DB, session *models.Session, courseID string) ([]models.CartItem, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	items := []models.CartItem{models.NewCartItem(*course, utils.CartID())}
	if err := session.SetItems(items); err != nil {
		return nil, err
	}
	return items, SaveSession(db, session)
}

// PurgeIdleSessions deletes sessions not seen since cutoff.
func PurgeIdleSessions(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Where("last_seen_at < ?", cutoff).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

// AbandonStaleCheckouts cancels checkouts left in details or payment since
// before cutoff.
func AbandonStaleCheckouts(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Model(&models.Checkout{}).
		Where("step IN ? AND processing = ? AND updated_at < ?",
			[]models.CheckoutStep{models.StepDetails, models.StepPayment}, false, cutoff).
		Update("step", models.StepCancelled)
	return res.RowsAffected, res.Error
}
