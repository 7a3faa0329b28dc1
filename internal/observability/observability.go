package observability

import (
	"context"

	"github.com/clubkitlabs/clubkit/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
	fx.Invoke(SetupTelemetry),
)

func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// SetupTelemetry installs OTLP trace and metric providers when tracing is
// enabled. With tracing disabled the global no-op providers stay in place.
func SetupTelemetry(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) {
	if !cfg.Observability.TracesEnable || cfg.Observability.OTLPEndpoint == "" {
		return
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.Observability.ServiceName),
	))
	if err != nil {
		log.Warn("otel resource init failed", zap.Error(err))
		return
	}

	var tp *sdktrace.TracerProvider
	var mp *sdkmetric.MeterProvider

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			traceExp, err := otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpoint(cfg.Observability.OTLPEndpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return err
			}
			tp = sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(traceExp),
				sdktrace.WithResource(res),
			)
			otel.SetTracerProvider(tp)

			metricExp, err := otlpmetricgrpc.New(ctx,
				otlpmetricgrpc.WithEndpoint(cfg.Observability.OTLPEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				return err
			}
			mp = sdkmetric.NewMeterProvider(
				sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
				sdkmetric.WithResource(res),
			)
			otel.SetMeterProvider(mp)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if tp != nil {
				_ = tp.Shutdown(ctx)
			}
			if mp != nil {
				_ = mp.Shutdown(ctx)
			}
			return nil
		},
	})
}
