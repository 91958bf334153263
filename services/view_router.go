package services

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strings"

	"github.com/anjiri1684/omnilearn/models"
	"gorm.io/gorm"
)

type ViewType string

const (
	ViewHome            ViewType = "HOME"
	ViewCatalog         ViewType = "CATALOG"
	ViewCourseDetail    ViewType = "COURSE_DETAIL"
	ViewCheckout        ViewType = "CHECKOUT"
	ViewAdminLogin      ViewType = "ADMIN_LOGIN"
	ViewSellerDashboard ViewType = "SELLER_DASHBOARD"
)

// View is one of HomeView, CatalogView, CourseDetailView, CheckoutView,
// AdminLoginView or SellerDashboardView.
type View interface {
	Type() ViewType
	isView()
}

type HomeView struct{}
type CatalogView struct{ Category string }
type CourseDetailView struct{ CourseID string }
type CheckoutView struct{}
type AdminLoginView struct{}
type SellerDashboardView struct{}

func (HomeView) Type() ViewType            { return ViewHome }
func (CatalogView) Type() ViewType         { return ViewCatalog }
func (CourseDetailView) Type() ViewType    { return ViewCourseDetail }
func (CheckoutView) Type() ViewType        { return ViewCheckout }
func (AdminLoginView) Type() ViewType      { return ViewAdminLogin }
func (SellerDashboardView) Type() ViewType { return ViewSellerDashboard }

func (HomeView) isView()            {}
func (CatalogView) isView()         {}
func (CourseDetailView) isView()    {}
func (CheckoutView) isView()        {}
func (AdminLoginView) isView()      {}
func (SellerDashboardView) isView() {}

type viewJSON struct {
	Type     ViewType `json:"type"`
	Category string   `json:"category,omitempty"`
	CourseID string   `json:"course_id,omitempty"`
}

func (v CatalogView) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewJSON{Type: ViewCatalog, Category: v.Category})
}
func (v CourseDetailView) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewJSON{Type: ViewCourseDetail, CourseID: v.CourseID})
}
func (HomeView) MarshalJSON() ([]byte, error)     { return json.Marshal(viewJSON{Type: ViewHome}) }
func (CheckoutView) MarshalJSON() ([]byte, error) { return json.Marshal(viewJSON{Type: ViewCheckout}) }
func (AdminLoginView) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewJSON{Type: ViewAdminLogin})
}
func (SellerDashboardView) MarshalJSON() ([]byte, error) {
	return json.Marshal(viewJSON{Type: ViewSellerDashboard})
}

type ViewParams struct {
	Access    string
	CourseID  string
	ShortCode string
}

type ViewRouterConfig struct {
	// AccessSecret enables the admin entry point when non-empty.
	AccessSecret    string
	DefaultView     string
	DefaultCourseID string
}

type ViewResolution struct {
	View       View `json:"view"`
	ClearQuery bool `json:"clear_query"`
}

// ResolveInitialView picks the first view the storefront should show.
// Precedence is admin secret, then direct course id, then short code, then
// the configured default.
func ResolveInitialView(db *gorm.DB, cfg ViewRouterConfig, params ViewParams, isAdmin bool) (ViewResolution, error) {
	if cfg.AccessSecret != "" && params.Access != "" &&
		subtle.ConstantTimeCompare([]byte(params.Access), []byte(cfg.AccessSecret)) == 1 {
		if isAdmin {
			return ViewResolution{View: SellerDashboardView{}}, nil
		}
		return ViewResolution{View: AdminLoginView{}}, nil
	}

	if id := strings.TrimSpace(params.CourseID); id != "" {
		ok, err := courseExists(db, id)
		if err != nil {
			return ViewResolution{}, err
		}
		if ok {
			return ViewResolution{View: CourseDetailView{CourseID: id}, ClearQuery: true}, nil
		}
		return ViewResolution{View: CourseDetailView{CourseID: cfg.DefaultCourseID}}, nil
	}

	if code := strings.TrimSpace(params.ShortCode); code != "" {
		id, found, err := ResolveShortLink(db, code)
		if err != nil {
			return ViewResolution{}, err
		}
		if found {
			ok, err := courseExists(db, id)
			if err != nil {
				return ViewResolution{}, err
			}
			if ok {
				return ViewResolution{View: CourseDetailView{CourseID: id}, ClearQuery: true}, nil
			}
		}
		return ViewResolution{View: CourseDetailView{CourseID: cfg.DefaultCourseID}}, nil
	}

	return ViewResolution{View: DefaultView(cfg)}, nil
}

func DefaultView(cfg ViewRouterConfig) View {
	switch strings.ToLower(cfg.DefaultView) {
	case "catalog":
		return CatalogView{}
	case "course":
		return CourseDetailView{CourseID: cfg.DefaultCourseID}
	default:
		return HomeView{}
	}
}

func courseExists(db *gorm.DB, id string) (bool, error) {
	err := db.Select("id").First(&models.Course{}, "id = ?", id).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
