package models

import "time"

type ShortLink struct {
	Code      string    `gorm:"primaryKey;size:6" json:"code"`
	CourseID  string    `gorm:"size:64;index;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
