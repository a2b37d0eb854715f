package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the pipeline's OTel metric instruments.
type Metrics struct {
	BuildTotal        metric.Int64Counter
	BuildDuration     metric.Float64Histogram
	PackagesInstalled metric.Int64Counter
	ArchiveSize       metric.Int64Histogram // bytes
}

// NewMetrics creates and registers all metric instruments.
// OTel hands out noop instruments when no MeterProvider is set, so the
// returned struct is always safe to use.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("layerkit")
	m := &Metrics{}
	var err error

	if m.BuildTotal, err = meter.Int64Counter("layerkit.build.total",
		metric.WithDescription("Total number of layer builds")); err != nil {
		return nil, err
	}
	if m.BuildDuration, err = meter.Float64Histogram("layerkit.build.duration_seconds",
		metric.WithDescription("Layer build duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(5, 15, 30, 60, 120, 300, 600, 900)); err != nil {
		return nil, err
	}
	if m.PackagesInstalled, err = meter.Int64Counter("layerkit.install.packages",
		metric.WithDescription("Total package specs installed")); err != nil {
		return nil, err
	}
	if m.ArchiveSize, err = meter.Int64Histogram("layerkit.archive.bytes",
		metric.WithDescription("Compressed archive size"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}

	return m, nil
}
