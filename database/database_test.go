package database_test

import (
	"testing"

	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedCoursesOnlyWhenEmpty(t *testing.T) {
	db := testdb.New(t)

	n, err := database.SeedCoursesFor(db, *database.SeedCoursesRaw)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	var course models.Course
	require.NoError(t, db.Preload("Coupons").First(&course, "id = ?", "hacking-bundle-1").Error)
	assert.Equal(t, int64(2999), course.Price)
	assert.Len(t, course.Curriculum, 5)
	require.Len(t, course.Coupons, 2)
	assert.Equal(t, "hacking-bundle-1", course.Coupons[0].CourseID)
	assert.NotEmpty(t, course.Coupons[0].ID)

	again, err := database.SeedCoursesFor(db, *database.SeedCoursesRaw)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestLoadSeedCoursesRejectsIncompleteEntries(t *testing.T) {
	_, err := database.LoadSeedCourses([]byte("courses:\n  - title: No id\n    price: 10\n"))
	assert.Error(t, err)

	_, err = database.LoadSeedCourses([]byte("courses: ["))
	assert.Error(t, err)
}

func TestSeedAdminHashesPassword(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, database.SeedAdminFor(db, "admin@omnilearn.in", "s3cret!", "Store Admin"))
	require.NoError(t, database.SeedAdminFor(db, "admin@omnilearn.in", "other", "Store Admin"))

	var admins []models.AdminUser
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.NotEqual(t, "s3cret!", admins[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("s3cret!")))
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, database.SeedAdminFor(db, "", "", ""))

	var count int64
	db.Model(&models.AdminUser{}).Count(&count)
	assert.Zero(t, count)
}
