package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

type CouponInput struct {
	Code     string  `json:"code" validate:"required,max=50"`
	Type     string  `json:"type" validate:"required,oneof=percent flat"`
	Value    float64 `json:"value" validate:"gt=0"`
	IsActive *bool   `json:"is_active"`
}

func (in CouponInput) toModel() (models.Coupon, error) {
	if in.Type == models.CouponPercent && in.Value > 100 {
		return models.Coupon{}, fmt.Errorf("percent coupons cannot exceed 100")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return models.Coupon{
		Code:     strings.ToUpper(strings.TrimSpace(in.Code)),
		Type:     in.Type,
		Value:    in.Value,
		IsActive: active,
	}, nil
}

type CourseRequest struct {
	models.Course
	CouponInputs []CouponInput `json:"coupons" validate:"dive"`
}

func parseCourse(c *fiber.Ctx) (models.Course, error) {
	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return models.Course{}, fmt.Errorf("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return models.Course{}, err
	}
	if err := validate.Var(req.Title, "required"); err != nil {
		return models.Course{}, fmt.Errorf("title is required")
	}
	if err := validate.Var(req.Price, "gte=0"); err != nil {
		return models.Course{}, fmt.Errorf("price must not be negative")
	}
	if req.Level != "" {
		if err := validate.Var(req.Level, "oneof=Beginner Intermediate Advanced"); err != nil {
			return models.Course{}, fmt.Errorf("level must be Beginner, Intermediate or Advanced")
		}
	}

	course := req.Course
	course.Coupons = nil
	for _, in := range req.CouponInputs {
		coupon, err := in.toModel()
		if err != nil {
			return models.Course{}, err
		}
		course.Coupons = append(course.Coupons, coupon)
	}
	return course, nil
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func ListTransactions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := services.TransactionFilter{
		Status:         c.Query("status"),
		ApprovalStatus: c.Query("approval_status"),
		Page:           page,
		Limit:          limit,
	}
	txns, total, err := services.ListTransactions(database.DB, filter)
	if err != nil {
		return serviceError(c, err)
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	return c.JSON(fiber.Map{
		"data": txns,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

func GetTransaction(c *fiber.Ctx) error {
	txn, err := services.FindTransaction(database.DB, c.Params("ref"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(txn)
}

func GenerateTransactionReport(c *fiber.Ctx) error {
	startDateStr := c.Query("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDateStr := c.Query("end_date", time.Now().Format("2006-01-02"))

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format. Use YYYY-MM-DD."})
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format. Use YYYY-MM-DD."})
	}
	endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	txns, err := services.TransactionsBetween(database.DB, startDate, endDate)
	if err != nil {
		return serviceError(c, err)
	}

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	headers := []string{"Order ID", "Date", "Course", "Customer Name", "Customer Email", "Customer Phone", "Amount", "Original Amount", "Coupon", "Method", "Reference", "Status", "Approval"}
	if err := w.Write(headers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV header"})
	}

	for _, t := range txns {
		coupon := ""
		if t.CouponCode != nil {
			coupon = *t.CouponCode
		}
		row := []string{
			t.OrderID,
			t.Date.Format("2006-01-02 15:04"),
			t.CourseTitle,
			t.CustomerName,
			t.CustomerEmail,
			t.CustomerPhone,
			fmt.Sprintf("%.2f", t.Amount),
			fmt.Sprintf("%.2f", t.OriginalAmount),
			coupon,
			t.PaymentMethod,
			t.TransactionRef,
			t.Status,
			t.ApprovalStatus,
		}
		if err := w.Write(row); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV row"})
		}
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_to_%s.csv\"", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))

	return c.Send(b.Bytes())
}

type MerchantRequest struct {
	Name       string `json:"name" validate:"required"`
	UpiID      string `json:"upi_id" validate:"required,contains=@"`
	MerchantID string `json:"merchant_id"`
	Number     string `json:"number"`
}

func GetMerchantSettings(c *fiber.Ctx) error {
	settings, err := services.GetMerchantSettings(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func UpdateMerchantSettings(c *fiber.Ctx) error {
	var req MerchantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	settings, err := services.SaveMerchantSettings(database.DB, models.MerchantSettings{
		Name:       strings.TrimSpace(req.Name),
		UpiID:      strings.TrimSpace(req.UpiID),
		MerchantID: strings.TrimSpace(req.MerchantID),
		Number:     strings.TrimSpace(req.Number),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func AdminCreateCourse(c *fiber.Ctx) error {
	course, err := parseCourse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := services.CreateCourse(database.DB, &course); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	course, err := parseCourse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	updated, err := services.UpdateCourse(database.DB, c.Params("courseId"), course)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

func AdminDeleteCourse(c *fiber.Ctx) error {
	if err := services.DeleteCourse(database.DB, c.Params("courseId")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ShareCourse mints a fresh short link on every call.
func ShareCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	code, err := services.CreateShortLink(database.DB, courseID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(services.BuildShareLinks(publicBaseURL(c), courseID, code))
}

func AdminListCoupons(c *fiber.Ctx) error {
	coupons, err := services.ListCoupons(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(coupons)
}

func parseCoupon(c *fiber.Ctx) (models.Coupon, error) {
	var req CouponInput
	if err := c.BodyParser(&req); err != nil {
		return models.Coupon{}, fmt.Errorf("Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return models.Coupon{}, err
	}
	return req.toModel()
}

func AdminAddCoupon(c *fiber.Ctx) error {
	coupon, err := parseCoupon(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	created, err := services.AddCoupon(database.DB, c.Params("courseId"), coupon)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func AdminUpdateCoupon(c *fiber.Ctx) error {
	coupon, err := parseCoupon(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	updated, err := services.UpdateCoupon(database.DB, c.Params("couponId"), coupon)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

func AdminDeleteCoupon(c *fiber.Ctx) error {
	if err := services.DeleteCoupon(database.DB, c.Params("couponId")); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LookupCoupon finds an active coupon by code anywhere in the catalog.
func LookupCoupon(c *fiber.Ctx) error {
	coupon, err := services.ValidateCouponCode(database.DB, c.Params("code"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(coupon)
}
