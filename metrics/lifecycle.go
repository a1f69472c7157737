package metrics

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	LIFECYCLE_TTL = time.Minute * 30
)

type LifecycleMetrics struct {
	opts metric.MeasurementOption

	lifecycleCounter        metric.Int64Counter
	lifecycleTimeHistogram  metric.Float64Histogram
	lifecycleStartTimeCache *ttlcache.Cache[string, time.Time]
}

// NewLifecycleMetrics initializes metrics related to order lifecycles
func NewLifecycleMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*LifecycleMetrics, error) {
	lifecycleCounter, err := meter.Int64Counter(
		"minter.Lifecycles",
		metric.WithDescription("Number of finished order lifecycles by terminal state"),
	)
	if err != nil {
		return nil, err
	}

	lifecycleTimeHistogram, err := meter.Float64Histogram(
		"minter.LifecycleTime",
		metric.WithDescription("Duration of order lifecycles"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &LifecycleMetrics{
		opts:                   opts,
		lifecycleCounter:       lifecycleCounter,
		lifecycleTimeHistogram: lifecycleTimeHistogram,
		lifecycleStartTimeCache: ttlcache.New(
			ttlcache.WithTTL[string, time.Time](LIFECYCLE_TTL),
		),
	}, nil
}

func (m *LifecycleMetrics) StartLifecycle(intentID string) {
	m.lifecycleStartTimeCache.Set(intentID, time.Now(), ttlcache.DefaultTTL)
}

func (m *LifecycleMetrics) EndLifecycle(intentID string, state string, kind string) {
	attrs := metric.WithAttributes(
		attribute.String("state", state),
		attribute.String("kind", kind),
	)
	m.lifecycleCounter.Add(context.Background(), 1, m.opts, attrs)

	startTime := m.lifecycleStartTimeCache.Get(intentID)
	if startTime == nil {
		log.Warn().Msgf("Lifecycle start time with ID %s not found", intentID)
		return
	}
	m.lifecycleStartTimeCache.Delete(intentID)

	m.lifecycleTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds(), m.opts, attrs)
}
