package semaphore

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/semaphore/clock"
)

const semaphoresConfig = `
	{
		"semaphores": {
			"workers": {
				"initialCount": 3,
				"backend": "SYNC",
				"clock": " Wall "
			},
			"broken": {
				"initialCount": -1
			},
			"unknown": {
				"backend": "spinlock"
			}
		}
	}
`

func newTestViper(t *testing.T) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(strings.NewReader(semaphoresConfig)))
	return v
}

func testDecodeNormalizes(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c, err  = Decode(map[string]interface{}{
			"initialCount": "7",
			"backend":      " Channel",
			"clock":        "MONOTONIC",
		})
	)

	require.NoError(err)
	assert.Equal(Config{InitialCount: 7, Backend: ChannelBackend, Clock: MonotonicClock}, *c)
}

func testDecodeInvalid(t *testing.T) {
	c, err := Decode(map[string]interface{}{"initialCount": "lots"})
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Run("Normalizes", testDecodeNormalizes)
	t.Run("Invalid", testDecodeInvalid)
}

func testConfigNil(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		c       *Config
	)

	o, err := c.Options()
	require.NoError(err)
	assert.Len(o, 2)

	s, err := c.New()
	require.NoError(err)
	assert.Zero(s.Available())
	assert.IsType(new(chanCond), s.cond)
	assert.Equal(clock.System(), s.clock)
}

func testConfigUnknown(t *testing.T) {
	for name, c := range map[string]Config{
		"Backend": {Backend: "spinlock"},
		"Clock":   {Clock: "sundial"},
	} {
		c := c
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			o, err := c.Options()
			assert.Nil(o)
			assert.True(errors.Is(err, ErrInvalidArgument))

			s, err := c.New()
			assert.Nil(s)
			assert.True(errors.Is(err, ErrInvalidArgument))
		})
	}
}

func testConfigExtraOptions(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		l       = new(sync.Mutex)
		c       = Config{InitialCount: 2, Backend: SyncBackend}
	)

	s, err := c.New(WithLocker(l))
	require.NoError(err)
	assert.Equal(2, s.Available())
	assert.Equal(l, s.lock)
	assert.IsType(new(syncCond), s.cond)
}

func TestConfig(t *testing.T) {
	t.Run("Nil", testConfigNil)
	t.Run("Unknown", testConfigUnknown)
	t.Run("ExtraOptions", testConfigExtraOptions)
}

func testFromViperNil(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	assert.Nil(Sub(nil, "workers"))

	c, err := FromViper(nil)
	require.NoError(err)
	assert.Equal(Config{}, *c)
}

func testFromViperNamed(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newTestViper(t)
	)

	c, err := FromViper(Sub(v, "workers"))
	require.NoError(err)
	assert.Equal(Config{InitialCount: 3, Backend: SyncBackend, Clock: WallClock}, *c)

	s, err := c.New()
	require.NoError(err)
	assert.Equal(3, s.Available())
	assert.IsType(new(syncCond), s.cond)
	assert.Equal(clock.Wall(), s.clock)
}

func testFromViperInvalid(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newTestViper(t)
	)

	for _, name := range []string{"broken", "unknown"} {
		c, err := FromViper(Sub(v, name))
		require.NoError(err)

		s, err := c.New()
		assert.Nil(s)
		assert.True(errors.Is(err, ErrInvalidArgument))
	}
}

func testFromViperMissing(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = newTestViper(t)
	)

	assert.Nil(Sub(v, "nosuch"))

	c, err := FromViper(Sub(v, "nosuch"))
	require.NoError(err)
	assert.Equal(Config{}, *c)
}

func TestFromViper(t *testing.T) {
	t.Run("Nil", testFromViperNil)
	t.Run("Named", testFromViperNamed)
	t.Run("Invalid", testFromViperInvalid)
	t.Run("Missing", testFromViperMissing)
}
