package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

type Bonus struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Review struct {
	ID          string  `json:"id" yaml:"id"`
	StudentName string  `json:"student_name" yaml:"student_name"`
	TimeAgo     string  `json:"time_ago" yaml:"time_ago"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Comment     string  `json:"comment" yaml:"comment"`
}

type Policies struct {
	Refund  string `json:"refund,omitempty" yaml:"refund"`
	Privacy string `json:"privacy,omitempty" yaml:"privacy"`
	License string `json:"license,omitempty" yaml:"license"`
	Terms   string `json:"terms,omitempty" yaml:"terms"`
}

type Course struct {
	ID               string   `gorm:"primaryKey;size:64" json:"id" yaml:"id"`
	Title            string   `gorm:"size:255;not null" json:"title" yaml:"title"`
	Instructor       string   `gorm:"size:255" json:"instructor" yaml:"instructor"`
	Price            int64    `gorm:"not null" json:"price" yaml:"price"`
	OriginalPrice    *int64   `json:"original_price,omitempty" yaml:"original_price"`
	Rating           float64  `json:"rating" yaml:"rating"`
	Students         int64    `json:"students" yaml:"students"`
	Image            string   `gorm:"type:text" json:"image" yaml:"image"`
	PromoVideo       string   `gorm:"type:text" json:"promo_video,omitempty" yaml:"promo_video"`
	VideoAspectRatio string   `gorm:"size:10" json:"video_aspect_ratio,omitempty" yaml:"video_aspect_ratio"`
	Category         string   `gorm:"size:100;index" json:"category" yaml:"category"`
	Level            string   `gorm:"size:20" json:"level" yaml:"level"`
	Description      string   `gorm:"type:text" json:"description" yaml:"description"`
	Curriculum       []string `gorm:"serializer:json" json:"curriculum" yaml:"curriculum"`
	Tags             []string `gorm:"serializer:json" json:"tags,omitempty" yaml:"tags"`
	FAQs             []FAQ    `gorm:"serializer:json" json:"faqs,omitempty" yaml:"faqs"`
	Features         []string `gorm:"serializer:json" json:"features,omitempty" yaml:"features"`
	Bonuses          []Bonus  `gorm:"serializer:json" json:"bonuses,omitempty" yaml:"bonuses"`
	BonusTotalValue  string   `gorm:"size:50" json:"bonus_total_value,omitempty" yaml:"bonus_total_value"`
	Guarantee        string   `gorm:"type:text" json:"guarantee,omitempty" yaml:"guarantee"`
	Policies         Policies `gorm:"serializer:json" json:"policies" yaml:"policies"`
	SupportEmail     string   `gorm:"size:255" json:"support_email,omitempty" yaml:"support_email"`
	SupportPhone     string   `gorm:"size:50" json:"support_phone,omitempty" yaml:"support_phone"`
	Reviews          []Review `gorm:"serializer:json" json:"reviews,omitempty" yaml:"reviews"`
	AIContext        string   `gorm:"type:text" json:"ai_context,omitempty" yaml:"ai_context"`

	Coupons []Coupon `gorm:"foreignKey:CourseID" json:"coupons" yaml:"coupons"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
