package services

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const MaxShortLinkAttempts = 5

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrShortLinkExhausted = errors.New("could not allocate a free short code")
)

// CreateShortLink issues a fresh code for the course. Codes are never reused
// between share requests, so one course can own many codes.
func CreateShortLink(db *gorm.DB, courseID string) (string, error) {
	return createShortLink(db, courseID, utils.ShortCode)
}

func createShortLink(db *gorm.DB, courseID string, nextCode func() string) (string, error) {
	if err := db.Select("id").First(&models.Course{}, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCourseNotFound
		}
		return "", err
	}

	// Insert-or-skip keeps the occupancy check and the write in one statement.
	for attempt := 1; attempt <= MaxShortLinkAttempts; attempt++ {
		link := models.ShortLink{Code: nextCode(), CourseID: courseID}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
		if res.Error != nil {
			return "", fmt.Errorf("save short link: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			return link.Code, nil
		}
		log.Printf("Short code %s already taken (attempt %d/%d)", link.Code, attempt, MaxShortLinkAttempts)
	}
	return "", ErrShortLinkExhausted
}

// ResolveShortLink returns the course id behind code, or found=false.
func ResolveShortLink(db *gorm.DB, code string) (string, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false, nil
	}

	var link models.ShortLink
	if err := db.First(&link, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return link.CourseID, true, nil
}

type ShareLinks struct {
	Code     string `json:"code"`
	ShortURL string `json:"short_url"`
	LongURL  string `json:"long_url"`
}

func BuildShareLinks(baseURL, courseID, code string) ShareLinks {
	base := strings.TrimRight(baseURL, "/")
	return ShareLinks{
		Code:     code,
		ShortURL: fmt.Sprintf("%s/?s=%s", base, url.QueryEscape(code)),
		LongURL:  fmt.Sprintf("%s/?c=%s", base, url.QueryEscape(courseID)),
	}
}
