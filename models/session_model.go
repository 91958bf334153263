package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session holds the visitor state that lives between requests: the cart.
type Session struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Cart       datatypes.JSON `json:"-"`
	LastSeenAt time.Time      `gorm:"index" json:"last_seen_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Items decodes the stored cart and rejects malformed entries.
func (s *Session) Items() ([]CartItem, error) {
	if len(s.Cart) == 0 || string(s.Cart) == "null" {
		return []CartItem{}, nil
	}

	var items []CartItem
	if err := json.Unmarshal(s.Cart, &items); err != nil {
		return nil, fmt.Errorf("decode cart for session %s: %w", s.ID, err)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
	}
	return items, nil
}

func (s *Session) SetItems(items []CartItem) error {
	if items == nil {
		items = []CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.Cart = datatypes.JSON(raw)
	return nil
}
