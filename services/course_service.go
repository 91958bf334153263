package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anjiri1684/omnilearn/models"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrDuplicateCoupon = errors.New("this course already has a coupon with that code")
	ErrCourseExists    = errors.New("a course with this id already exists")
)

type CourseFilter struct {
	Category string
	Level    string
}

func ListCourses(db *gorm.DB, f CourseFilter) ([]models.Course, error) {
	query := db.Preload("Coupons")
	if f.Category != "" && !strings.EqualFold(f.Category, "all") {
		query = query.Where("category = ?", f.Category)
	}
	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}

	var courses []models.Course
	err := query.Order("created_at asc").Find(&courses).Error
	return courses, err
}

func GetCourse(db *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	err := db.Preload("Coupons").First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func Categories(db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.Model(&models.Course{}).Distinct().Order("category").Pluck("category", &categories).Error
	return categories, err
}

func CreateCourse(db *gorm.DB, course *models.Course) error {
	if course.ID != "" {
		if ok, err := courseExists(db, course.ID); err != nil {
			return err
		} else if ok {
			return ErrCourseExists
		}
	}
	if err := checkCouponCodes(course.Coupons); err != nil {
		return err
	}
	return db.Create(course).Error
}

// UpdateCourse overwrites the course fields and replaces its coupon list.
func UpdateCourse(db *gorm.DB, id string, input models.Course) (*models.Course, error) {
	if err := checkCouponCodes(input.Coupons); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Course
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		input.ID = id
		input.CreatedAt = existing.CreatedAt
		coupons := input.Coupons
		input.Coupons = nil
		if err := tx.Omit("Coupons").Save(&input).Error; err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", id).Delete(&models.Coupon{}).Error; err != nil {
			return err
		}
		for i := range coupons {
			coupons[i].ID = ""
			coupons[i].CourseID = id
		}
		if len(coupons) > 0 {
			if err := tx.Create(&coupons).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetCourse(db, id)
}

func DeleteCourse(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCourseNotFound
		}
		return tx.Where("course_id = ?", id).Delete(&models.Coupon{}).Error
	})
}

func ListCoupons(db *gorm.DB) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := db.Order("course_id, code").Find(&coupons).Error
	return coupons, err
}

func AddCoupon(db *gorm.DB, courseID string, coupon models.Coupon) (*models.Coupon, error) {
	course, err := GetCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := checkCouponCodes(append(course.Coupons, coupon)); err != nil {
		return nil, err
	}

	coupon.ID = ""
	coupon.CourseID = courseID
	if err := db.Create(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func UpdateCoupon(db *gorm.DB, couponID string, input models.Coupon) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := db.First(&coupon, "id = ?", couponID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	var siblings []models.Coupon
	if err := db.Where("course_id = ? AND id <> ?", coupon.CourseID, couponID).Find(&siblings).Error; err != nil {
		return nil, err
	}
	if err := checkCouponCodes(append(siblings, input)); err != nil {
		return nil, err
	}

	coupon.Code = input.Code
	coupon.Type = input.Type
	coupon.Value = input.Value
	coupon.IsActive = input.IsActive
	if err := db.Save(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func DeleteCoupon(db *gorm.DB, couponID string) error {
	res := db.Delete(&models.Coupon{}, "id = ?", couponID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func checkCouponCodes(coupons []models.Coupon) error {
	seen := map[string]bool{}
	for _, c := range coupons {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		if seen[code] {
			return fmt.Errorf("%w: %s", ErrDuplicateCoupon, code)
		}
		seen[code] = true
	}
	return nil
}
