package services

import (
	"testing"

	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseCRUD(t *testing.T) {
	db := testdb.New(t)

	course := models.Course{Title: "Cinematic Video Editing", Price: 3999, Category: "Design", Level: models.LevelIntermediate,
		Curriculum: []string{"Cuts", "Color"}, Coupons: []models.Coupon{percent("EDIT20", 20)}}
	require.NoError(t, CreateCourse(db, &course))
	require.NotEmpty(t, course.ID)

	got, err := GetCourse(db, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cuts", "Color"}, got.Curriculum)
	require.Len(t, got.Coupons, 1)

	update := *got
	update.Price = 2999
	update.Coupons = []models.Coupon{flat("FLAT100", 100), percent("NEW10", 10)}
	updated, err := UpdateCourse(db, course.ID, update)
	require.NoError(t, err)
	assert.Equal(t, int64(2999), updated.Price)
	assert.Len(t, updated.Coupons, 2)

	_, err = UpdateCourse(db, "ghost", update)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	require.NoError(t, DeleteCourse(db, course.ID))
	_, err = GetCourse(db, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	var orphaned int64
	db.Model(&models.Coupon{}).Where("course_id = ?", course.ID).Count(&orphaned)
	assert.Zero(t, orphaned)

	assert.ErrorIs(t, DeleteCourse(db, course.ID), ErrCourseNotFound)
}

func TestCreateCourseRejectsDuplicates(t *testing.T) {
	db := testdb.New(t)
	seedCourse(t, db, "c1", 100)

	err := CreateCourse(db, &models.Course{ID: "c1", Title: "Again"})
	assert.ErrorIs(t, err, ErrCourseExists)

	err = CreateCourse(db, &models.Course{Title: "Dup coupons", Coupons: []models.Coupon{percent("A", 1), flat("a", 2)}})
	assert.ErrorIs(t, err, ErrDuplicateCoupon)
}

func TestListCoursesAndCategories(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, CreateCourse(db, &models.Course{ID: "d1", Title: "Go", Category: "Development", Level: models.LevelAdvanced}))
	require.NoError(t, CreateCourse(db, &models.Course{ID: "d2", Title: "UX", Category: "Design", Level: models.LevelBeginner}))

	all, err := ListCourses(db, CourseFilter{Category: "All"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dev, err := ListCourses(db, CourseFilter{Category: "Development"})
	require.NoError(t, err)
	require.Len(t, dev, 1)
	assert.Equal(t, "d1", dev[0].ID)

	cats, err := Categories(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Design", "Development"}, cats)
}

func TestCouponCRUD(t *testing.T) {
	db := testdb.New(t)
	seedCourse(t, db, "c1", 1000, percent("WELCOME50", 50))

	added, err := AddCoupon(db, "c1", flat("FLAT500", 500))
	require.NoError(t, err)
	assert.Equal(t, "c1", added.CourseID)

	_, err = AddCoupon(db, "c1", flat("welcome50", 5))
	assert.ErrorIs(t, err, ErrDuplicateCoupon)

	_, err = AddCoupon(db, "ghost", flat("X", 5))
	assert.ErrorIs(t, err, ErrCourseNotFound)

	in := *added
	in.IsActive = false
	updated, err := UpdateCoupon(db, added.ID, in)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	all, err := ListCoupons(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, DeleteCoupon(db, added.ID))
	assert.ErrorIs(t, DeleteCoupon(db, added.ID), ErrCouponNotFound)
}
