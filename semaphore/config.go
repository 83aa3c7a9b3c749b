// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/xmidt-org/semaphore/clock"
)

const (
	// SemaphoresKey is the Viper key under which named semaphore configurations are stored.
	// FromViper *does not* assume this key.  Use Sub to obtain the subtree for one semaphore.
	SemaphoresKey = "semaphores"

	// DefaultName is the name used for a semaphore provided without one
	DefaultName = "default"

	ChannelBackend = "channel"
	SyncBackend    = "sync"

	MonotonicClock = "monotonic"
	WallClock      = "wall"
)

// Config is the externally configurable description of a Semaphore.  The zero value
// describes a semaphore with no permits and the default backend and clock.
type Config struct {
	// InitialCount is the number of permits available at construction.  It must not be negative.
	InitialCount int `json:"initialCount"`

	// Backend is the condition implementation, either "channel" or "sync".  The default is "channel".
	Backend string `json:"backend"`

	// Clock is the time base for AcquireFor, either "monotonic" or "wall".  The default is "monotonic".
	Clock string `json:"clock"`
}

func (c *Config) initialCount() int {
	if c != nil {
		return c.InitialCount
	}

	return 0
}

func (c *Config) backend() string {
	if c != nil && len(c.Backend) > 0 {
		return c.Backend
	}

	return ChannelBackend
}

func (c *Config) clock() string {
	if c != nil && len(c.Clock) > 0 {
		return c.Clock
	}

	return MonotonicClock
}

// Options translates this configuration into the Options for New.  This method may be
// called on a nil Config.
func (c *Config) Options() ([]Option, error) {
	var o []Option
	switch b := c.backend(); b {
	case ChannelBackend:
		o = append(o, WithCond(NewChanCond))
	case SyncBackend:
		o = append(o, WithCond(NewSyncCond))
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidArgument, b)
	}

	switch k := c.clock(); k {
	case MonotonicClock:
		o = append(o, WithClock(clock.System()))
	case WallClock:
		o = append(o, WithClock(clock.Wall()))
	default:
		return nil, fmt.Errorf("%w: unknown clock %q", ErrInvalidArgument, k)
	}

	return o, nil
}

// New creates the configured Semaphore.  Any extra options are applied after the
// configured ones, so they take precedence.  This method may be called on a nil Config.
func (c *Config) New(extra ...Option) (*Semaphore, error) {
	o, err := c.Options()
	if err != nil {
		return nil, err
	}

	return New(c.initialCount(), append(o, extra...)...)
}

// normalizeStrings is a decode hook that lower cases every value decoded into a string field.
func normalizeStrings(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}

	s, err := cast.ToStringE(data)
	if err != nil {
		return nil, err
	}

	return strings.ToLower(strings.TrimSpace(s)), nil
}

// Decode produces a Config from an arbitrary map-like input, e.g. the result of
// viper's AllSettings.  Values are weakly typed, so "3" decodes as an InitialCount of 3.
func Decode(input interface{}) (*Config, error) {
	c := new(Config)
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(normalizeStrings),
		WeaklyTypedInput: true,
		Result:           c,
	})

	if err != nil {
		return nil, err
	}

	if err := d.Decode(input); err != nil {
		return nil, err
	}

	return c, nil
}

// Sub returns the child Viper holding the configuration of the named semaphore, found under
// SemaphoresKey.  If passed nil, or if no such configuration exists, this function returns nil.
func Sub(v *viper.Viper, name string) *viper.Viper {
	if v != nil {
		return v.Sub(SemaphoresKey + "." + name)
	}

	return nil
}

// FromViper produces a Config from a (possibly nil) Viper instance.
// Callers should use FromViper(Sub(v, name)) if the standard subkey is desired.
func FromViper(v *viper.Viper) (*Config, error) {
	if v == nil {
		return new(Config), nil
	}

	return Decode(v.AllSettings())
}
