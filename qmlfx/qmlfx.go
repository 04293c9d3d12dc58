//go:build !ios && !android && (amd64 || arm64)

// Package qmlfx wires the QmlNet binding layer into an fx application.
//
//	fx.New(
//		qmlfx.Module(qmlfx.WithConfigPath("qmlnet.toml")),
//		fx.Invoke(func(types *qmlnet.TypeRegistry) { types.Register("app.Counter", Counter{}) }),
//	).Run()
package qmlfx

import (
	"context"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Options ----------

type options struct {
	configPath string
	config     *qmlnet.Config
	registerer prometheus.Registerer
}

// Option configures Module.
type Option func(*options)

// WithConfigPath loads configuration from a TOML file.
func WithConfigPath(path string) Option { return func(o *options) { o.configPath = path } }

// WithConfig supplies configuration directly. It takes precedence over
// WithConfigPath.
func WithConfig(cfg qmlnet.Config) Option { return func(o *options) { o.config = &cfg } }

// WithRegisterer sets where dispatch metrics are registered. The default is
// prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// Module returns the fx option set providing qmlnet.Config, *zap.Logger,
// *qmlnet.Metrics, *qmlnet.TypeRegistry, *qmlnet.Registry and
// *qmlnet.Dispatcher, with lifecycle hooks that install them process-wide.
func Module(opts ...Option) fx.Option {
	o := options{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	return fx.Options(
		fx.Provide(func() (qmlnet.Config, error) { return provideConfig(o) }),
		fx.Provide(provideLogger),
		fx.Provide(func(cfg qmlnet.Config) (*qmlnet.Metrics, error) { return provideMetrics(cfg, o.registerer) }),
		fx.Provide(func() *qmlnet.TypeRegistry { return qmlnet.Types }),
		fx.Provide(qmlnet.DefaultRegistry),
		fx.Provide(provideDispatcher),
		fx.Invoke(registerHooks),
	)
}

// ---------- Providers ----------

func provideConfig(o options) (qmlnet.Config, error) {
	if o.config != nil {
		if err := o.config.Validate(); err != nil {
			return qmlnet.Config{}, err
		}
		return *o.config, nil
	}
	if o.configPath != "" {
		return qmlnet.LoadConfig(o.configPath)
	}
	return qmlnet.DefaultConfig(), nil
}

func provideLogger(cfg qmlnet.Config) (*zap.Logger, error) {
	return qmlnet.NewLogger(cfg.Log)
}

// provideMetrics returns a nil *Metrics when metrics are disabled; the
// dispatcher records nothing in that case.
func provideMetrics(cfg qmlnet.Config, reg prometheus.Registerer) (*qmlnet.Metrics, error) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	return qmlnet.NewMetrics(reg, cfg.Metrics.Namespace)
}

func provideDispatcher(r *qmlnet.Registry, l *zap.Logger, m *qmlnet.Metrics) *qmlnet.Dispatcher {
	return qmlnet.NewDispatcher(r,
		qmlnet.WithDispatchLogger(l.Named("qmlnet")),
		qmlnet.WithMetrics(m),
		qmlnet.WithErrorHandler(func(err *qmlnet.DispatchError) {
			l.Warn("dispatch recovered", zap.String("op", err.Op), zap.Error(err))
		}),
	)
}

// ---------- Lifecycle ----------

type hookDeps struct {
	fx.In
	Config     qmlnet.Config
	Logger     *zap.Logger
	Dispatcher *qmlnet.Dispatcher
}

func registerHooks(lc fx.Lifecycle, d hookDeps) {
	var prev *qmlnet.Dispatcher

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			qmlnet.SetLogger(d.Logger)
			prev = qmlnet.SetDispatcher(d.Dispatcher)

			lib := d.Config.Library
			if !lib.Configured() && !lib.Required {
				d.Logger.Info("qmlnet running without native library")
				return nil
			}
			if err := qmlnet.Init(d.Config); err != nil {
				if lib.Required {
					qmlnet.SetDispatcher(prev)
					return err
				}
				d.Logger.Warn("qmlnet native library unavailable", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			qmlnet.SetDefaultCallbacks()
			qmlnet.SetDispatcher(prev)
			_ = d.Logger.Sync()
			return nil
		},
	})
}
