package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/omnilearn/internal/testdb"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestLoadSessionCreatesAndReloads(t *testing.T) {
	db := testdb.New(t)

	fresh, err := LoadSession(db, "")
	require.NoError(t, err)
	require.NotEmpty(t, fresh.ID)

	again, err := LoadSession(db, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, again.ID)

	unknown, err := LoadSession(db, "does-not-exist")
	require.NoError(t, err)
	assert.NotEqual(t, "does-not-exist", unknown.ID)
}

func TestLoadSessionDiscardsMalformedCart(t *testing.T) {
	db := testdb.New(t)
	bad := models.Session{Cart: datatypes.JSON(`[{"cart_id":"1"}]`), LastSeenAt: time.Now()}
	require.NoError(t, db.Create(&bad).Error)

	s, err := LoadSession(db, bad.ID)
	require.NoError(t, err)
	items, err := s.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartLifecycle(t *testing.T) {
	db := testdb.New(t)
	seedCourse(t, db, "c1", 1000)
	seedCourse(t, db, "c2", 2000)
	s, err := LoadSession(db, "")
	require.NoError(t, err)

	_, err = AddToCart(db, s, "c1")
	require.NoError(t, err)
	items, err := AddToCart(db, s, "c1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].CartID, items[1].CartID, "repeat adds stay distinct")

	// Price is frozen at add time.
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", "c1").Update("price", 5).Error)
	reloaded, err := LoadSession(db, s.ID)
	require.NoError(t, err)
	stored, err := reloaded.Items()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored[0].Price)

	items, err = RemoveFromCart(db, reloaded, stored[0].CartID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = RemoveFromCart(db, reloaded, "missing")
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	items, err = BuyNow(db, reloaded, "c2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c2", items[0].CourseID)

	require.NoError(t, ClearCart(db, reloaded))
	items, err = reloaded.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = AddToCart(db, reloaded, "ghost")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestPurgeIdleSessions(t *testing.T) {
	db := testdb.New(t)
	old := models.Session{LastSeenAt: time.Now().Add(-48 * time.Hour)}
	recent := models.Session{LastSeenAt: time.Now()}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)

	n, err := PurgeIdleSessions(db, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAbandonStaleCheckouts(t *testing.T) {
	db := testdb.New(t)
	stale := models.Checkout{SessionID: "s", Step: models.StepPayment}
	done := models.Checkout{SessionID: "s", Step: models.StepPending}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&done).Error)

	n, err := AbandonStaleCheckouts(db, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, db.First(&stale, "id = ?", stale.ID).Error)
	assert.Equal(t, models.StepCancelled, stale.Step)
}

func TestLoadSessionOnlyTouchesLastSeen(t *testing.T) {
	db := testdb.New(t)
	seedCourse(t, db, "c1", 1000)
	s, err := LoadSession(db, "")
	require.NoError(t, err)
	_, err = AddToCart(db, s, "c1")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", s.ID).UpdateColumn("last_seen_at", past).Error)

	reloaded, err := LoadSession(db, s.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.LastSeenAt.After(past))

	var stored models.Session
	require.NoError(t, db.First(&stored, "id = ?", s.ID).Error)
	assert.True(t, stored.LastSeenAt.After(past))
	items, err := stored.Items()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
