package observability

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetricProvider creates the meter provider exporting to the collector at
// collectorURL. Without a collector metrics are only kept in process.
func InitMetricProvider(ctx context.Context, collectorURL string) (*sdkmetric.MeterProvider, error) {
	if collectorURL == "" {
		return sdkmetric.NewMeterProvider(), nil
	}

	parsedURL, err := url.Parse(collectorURL)
	if err != nil {
		return nil, err
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(parsedURL.Host),
		otlpmetrichttp.WithURLPath("/v1/metrics"),
	}
	if parsedURL.Scheme == "http" {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	), nil
}
