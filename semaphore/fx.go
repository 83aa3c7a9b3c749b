// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics/provider"
	"github.com/spf13/viper"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideIn is the set of optional components used to build a semaphore within an uber/fx app.
type ProvideIn struct {
	fx.In

	// Viper is the source of configuration.  When present, the semaphore is configured from
	// Sub(Viper, name).  When absent, the zero Config is used.
	Viper *viper.Viper `optional:"true"`

	// Logger is the base logger.  When absent, sallust.Default() is used.
	Logger *zap.Logger `optional:"true"`

	// Provider is the metrics provider.  When present, the semaphore is instrumented with
	// NewMeasures, which requires Metrics() to be registered with it.
	Provider provider.Provider `optional:"true"`
}

// NewProvided builds the instrumented semaphore with the given name from the supplied components.
func NewProvided(name string, in ProvideIn) (Interface, error) {
	logger := in.Logger
	if logger == nil {
		logger = sallust.Default()
	}

	logger = logger.With(zap.String(NameLabel, name))
	cfg, err := FromViper(Sub(in.Viper, name))
	if err != nil {
		return nil, err
	}

	s, err := cfg.New()
	if err != nil {
		logger.Error("unable to create semaphore", zap.Error(err))
		return nil, err
	}

	o := []InstrumentOption{WithLogger(logger)}
	if in.Provider != nil {
		o = append(o, NewMeasures(in.Provider, name).InstrumentOptions()...)
	}

	logger.Info("created semaphore",
		zap.Int("initialCount", cfg.initialCount()),
		zap.String("backend", cfg.backend()),
		zap.String("clock", cfg.clock()),
	)

	return Instrument(s, o...), nil
}

// Provide returns an fx option that provides a semaphore Interface under the given name.  An empty
// name provides an unnamed Interface configured and labeled as DefaultName.
func Provide(name string) fx.Option {
	if len(name) == 0 {
		return fx.Provide(
			func(in ProvideIn) (Interface, error) {
				return NewProvided(DefaultName, in)
			},
		)
	}

	return fx.Provide(
		fx.Annotated{
			Name: name,
			Target: func(in ProvideIn) (Interface, error) {
				return NewProvided(name, in)
			},
		},
	)
}
