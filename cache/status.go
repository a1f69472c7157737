package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-minting/lifecycle"
)

const (
	STATUS_TTL = time.Hour
)

// StatusCache keeps the latest status of every lifecycle for the status TTL.
type StatusCache struct {
	statusCache *ttlcache.Cache[string, lifecycle.Status]
}

func NewStatusCache(ttl time.Duration) *StatusCache {
	if ttl == 0 {
		ttl = STATUS_TTL
	}

	return &StatusCache{
		statusCache: ttlcache.New(
			ttlcache.WithTTL[string, lifecycle.Status](ttl),
		),
	}
}

// Watch evicts expired statuses until ctx is done.
func (s *StatusCache) Watch(ctx context.Context) {
	go s.statusCache.Start()

	<-ctx.Done()
	s.statusCache.Stop()
}

// Report caches the status. A terminal status is never replaced by a
// non terminal one.
func (s *StatusCache) Report(status lifecycle.Status) {
	previous := s.statusCache.Get(status.IntentID)
	if previous != nil && previous.Value().State.Terminal() && !status.State.Terminal() {
		log.Warn().Str("intentID", status.IntentID).Msgf("Ignoring status %s after terminal status %s", status.State, previous.Value().State)
		return
	}

	log.Debug().Str("intentID", status.IntentID).Msgf("Caching lifecycle status %s", status.State)
	s.statusCache.Set(status.IntentID, status, ttlcache.DefaultTTL)
}

func (s *StatusCache) Status(intentID string) (lifecycle.Status, error) {
	status := s.statusCache.Get(intentID)
	if status == nil {
		return lifecycle.Status{}, fmt.Errorf("no status found with id %s", intentID)
	}

	return status.Value(), nil
}
