package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type MintingMetrics struct {
	*HostMetrics
	*LifecycleMetrics
}

// NewMintingMetrics creates the metrics of the service tagged with the environment,
// benefactor and version.
func NewMintingMetrics(ctx context.Context, meter metric.Meter, env, benefactor, version string) (*MintingMetrics, error) {
	opts := metric.WithAttributes(
		attribute.String("env", env),
		attribute.String("benefactor", benefactor),
		attribute.String("version", version),
	)

	hostMetrics, err := NewHostMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	lifecycleMetrics, err := NewLifecycleMetrics(ctx, meter, opts)
	if err != nil {
		return nil, err
	}

	return &MintingMetrics{
		HostMetrics:      hostMetrics,
		LifecycleMetrics: lifecycleMetrics,
	}, nil
}
