// Package telemetry provides OpenTelemetry initialization.
// It configures trace and metric providers that export via OTLP/HTTP.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled         bool    `mapstructure:"enabled"`
	Endpoint        string  `mapstructure:"endpoint"`   // OTLP HTTP endpoint, e.g. "http://localhost:4318"
	AuthToken       string  `mapstructure:"auth_token"` // Basic auth token (base64 encoded user:pass)
	Traces          bool    `mapstructure:"traces"`
	Metrics         bool    `mapstructure:"metrics"`
	TraceSampleRate float64 `mapstructure:"trace_sample_rate"` // 0.0-1.0
}

// Provider holds the initialized OTel providers.
type Provider struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

type endpoint struct {
	host     string
	basePath string
	insecure bool
	headers  map[string]string
}

// NewProvider configures OTel providers from cfg and installs them globally.
// Returns an empty provider when telemetry is disabled.
// The returned shutdown function must be called on exit.
func NewProvider(ctx context.Context, cfg Config, serviceName, version string) (*Provider, func(context.Context), error) {
	noop := func(context.Context) {}

	if !cfg.Enabled || cfg.Endpoint == "" {
		return &Provider{}, noop, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, noop, fmt.Errorf("create resource: %w", err)
	}

	ep, err := parseEndpoint(cfg)
	if err != nil {
		return nil, noop, err
	}

	var shutdowns []func(context.Context) error
	p := &Provider{}

	if cfg.Traces {
		if err := p.setupTracing(ctx, ep, cfg.TraceSampleRate, res, &shutdowns); err != nil {
			return nil, noop, err
		}
	}

	if cfg.Metrics {
		if err := p.setupMetrics(ctx, ep, res, &shutdowns); err != nil {
			return nil, noop, err
		}
	}

	shutdown := func(ctx context.Context) {
		for _, fn := range shutdowns {
			_ = fn(ctx)
		}
	}

	return p, shutdown, nil
}

func parseEndpoint(cfg Config) (*endpoint, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", cfg.Endpoint)
	}

	headers := make(map[string]string)
	if cfg.AuthToken != "" {
		headers["Authorization"] = "Basic " + cfg.AuthToken
	}

	return &endpoint{
		host:     u.Host,
		basePath: strings.TrimSuffix(u.Path, "/"),
		insecure: u.Scheme == "http",
		headers:  headers,
	}, nil
}

// sampler maps a rate onto a sampler: 0 never, (0,1) ratio, >= 1 always.
func sampler(rate float64) trace.Sampler {
	switch {
	case rate <= 0:
		return trace.NeverSample()
	case rate < 1.0:
		return trace.TraceIDRatioBased(rate)
	default:
		return trace.AlwaysSample()
	}
}

func (p *Provider) setupTracing(ctx context.Context, ep *endpoint, rate float64, res *resource.Resource, shutdowns *[]func(context.Context) error) error {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(ep.host),
		otlptracehttp.WithHeaders(ep.headers),
	}
	if ep.basePath != "" {
		opts = append(opts, otlptracehttp.WithURLPath(ep.basePath+"/v1/traces"))
	}
	if ep.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(sampler(rate)),
	)
	otel.SetTracerProvider(tp)
	p.TracerProvider = tp
	*shutdowns = append(*shutdowns, tp.Shutdown)
	return nil
}

func (p *Provider) setupMetrics(ctx context.Context, ep *endpoint, res *resource.Resource, shutdowns *[]func(context.Context) error) error {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(ep.host),
		otlpmetrichttp.WithHeaders(ep.headers),
	}
	if ep.basePath != "" {
		opts = append(opts, otlpmetrichttp.WithURLPath(ep.basePath+"/v1/metrics"))
	}
	if ep.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create metric exporter: %w", err)
	}

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exp)),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	p.MeterProvider = mp
	*shutdowns = append(*shutdowns, mp.Shutdown)
	return nil
}
