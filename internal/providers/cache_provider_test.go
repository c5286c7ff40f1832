package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/structures"
)

type nullLogger struct{}

func (nullLogger) Errorf(TypeEnum, string, ...interface{}) {}
func (nullLogger) Warnf(TypeEnum, string, ...interface{})  {}
func (nullLogger) Debugf(TypeEnum, string, ...interface{}) {}
func (nullLogger) Infof(TypeEnum, string, ...interface{})  {}
func (nullLogger) Fatalf(TypeEnum, string, ...interface{}) {}
func (nullLogger) Close()                                  {}

func cacheConfig(enabled bool, sizeMB int) *structures.Config {
	return &structures.Config{
		Cache:     structures.CacheConfig{Enabled: enabled, Size: sizeMB},
		Scheduler: structures.SchedulerConfig{ReplanInterval: 15 * time.Minute},
	}
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1), nullLogger{})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("times:2026-08-25", []byte(`{"fajr":"04:12"}`))
	val, ok := c.Get("times:2026-08-25")
	require.True(t, ok)
	assert.Equal(t, `{"fajr":"04:12"}`, string(val))

	c.Del("times:2026-08-25")
	_, ok = c.Get("times:2026-08-25")
	assert.False(t, ok)
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 1), nullLogger{})
	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0), nullLogger{})
	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}
