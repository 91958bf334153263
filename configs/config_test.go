package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefault(t *testing.T) {
	t.Setenv("OMNI_TEST_VIEW", "catalog")

	assert.Equal(t, "catalog", ConfigDefault("OMNI_TEST_VIEW", "home"))
	assert.Equal(t, "home", ConfigDefault("OMNI_TEST_MISSING", "home"))
}

func TestConfigInt(t *testing.T) {
	t.Setenv("OMNI_TEST_PORT", "9090")
	t.Setenv("OMNI_TEST_BAD", "ninety")

	assert.Equal(t, 9090, ConfigInt("OMNI_TEST_PORT", 8080))
	assert.Equal(t, 8080, ConfigInt("OMNI_TEST_BAD", 8080))
	assert.Equal(t, 8080, ConfigInt("OMNI_TEST_UNSET", 8080))
}

func TestConfigDuration(t *testing.T) {
	t.Setenv("OMNI_TEST_DELAY", "1500ms")
	t.Setenv("OMNI_TEST_BAD_DELAY", "soon")

	assert.Equal(t, 1500*time.Millisecond, ConfigDuration("OMNI_TEST_DELAY", time.Second))
	assert.Equal(t, time.Second, ConfigDuration("OMNI_TEST_BAD_DELAY", time.Second))
}
