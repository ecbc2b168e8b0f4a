package actors

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"actorrank/internal/eventbus"
	"actorrank/internal/metrics"
)

// Service answers SearchRequested events with SearchCompleted or SearchFailed
type Service struct {
	ctx         context.Context
	bus         eventbus.EventBus
	fetcher     Fetcher
	timeout     time.Duration
	log         logrus.FieldLogger
	unsubscribe func()
}

// NewService creates the service and subscribes it to the bus.
// ctx bounds every fetch; timeout, when positive, bounds each one.
func NewService(ctx context.Context, bus eventbus.EventBus, fetcher Fetcher, timeout time.Duration, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Service{
		ctx:     ctx,
		bus:     bus,
		fetcher: fetcher,
		timeout: timeout,
		log:     log,
	}

	s.unsubscribe = bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchRequestedEvent); ok {
			s.Search(event.Seq, event.Query, event.Refresh)
		}
	})

	return s
}

// Search runs one fetch and publishes its outcome tagged with seq.
// With refresh set, cached results for query are dropped first.
func (s *Service) Search(seq uint64, query string, refresh bool) {
	if inv, ok := s.fetcher.(Invalidator); ok && refresh {
		inv.Invalidate(query)
	}

	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.log.WithFields(logrus.Fields{"seq": seq, "query": query})
	start := time.Now()

	actors, err := s.fetcher.GetActors(ctx, query)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to fetch data")
		s.bus.Publish(eventbus.SearchFailedEvent{Seq: seq, Query: query, Err: err})
		return
	}

	metrics.SearchRequests.WithLabelValues("ok").Inc()
	log.WithField("count", len(actors)).Info("search completed")
	s.bus.Publish(eventbus.SearchCompletedEvent{Seq: seq, Query: query, Results: actors})
}

// Close stops listening for search requests
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
