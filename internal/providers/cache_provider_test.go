package providers

import (
	"fmt"
	"testing"

	"clinicd/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger implements Logger and discards everything.
type captureLogger struct{}

func (c *captureLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (c *captureLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (c *captureLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (c *captureLogger) Close()                                        {}

func enabledCacheConfig() *structures.Config {
	return &structures.Config{Cache: structures.CacheConfig{Enabled: true, Size: 1}}
}

func TestCacheProvider_SetGet(t *testing.T) {
	cache := NewCacheProvider(enabledCacheConfig(), &captureLogger{})

	_, ok := cache.Get("patients")
	assert.False(t, ok)

	cache.Set("patients", []byte(`[{"id":"p1"}]`))
	val, ok := cache.Get("patients")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, string(val))
}

func TestCacheProvider_Purge(t *testing.T) {
	cache := NewCacheProvider(enabledCacheConfig(), &captureLogger{})

	for i := 0; i < 10; i++ {
		cache.Set(fmt.Sprintf("key%d", i), []byte("value"))
	}
	cache.Purge()
	for i := 0; i < 10; i++ {
		_, ok := cache.Get(fmt.Sprintf("key%d", i))
		assert.False(t, ok)
	}
}

func TestCacheProvider_DisabledIsNoop(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: false}}
	cache := NewCacheProvider(conf, &captureLogger{})

	cache.Set("patients", []byte("value"))
	_, ok := cache.Get("patients")
	assert.False(t, ok)
}

func TestCacheProvider_ZeroSizeIsNoop(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: true, Size: 0}}
	cache := NewCacheProvider(conf, &captureLogger{})

	cache.Set("patients", []byte("value"))
	_, ok := cache.Get("patients")
	assert.False(t, ok)
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("patients"), unsafeStringToBytes("patients"))
}
