package notify

import (
	"context"
	"sync"

	"github.com/nehueninos/nhnproparts/pkg/logger"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Sink receives submitted orders. Deliver is called once per order and is
// never retried.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, order domain.OrderPayload) error
}

// Dispatcher fans an order out to every sink concurrently.
type Dispatcher struct {
	sinks      []Sink
	deliveries *prometheus.CounterVec
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks}
}

// WithMetrics counts delivery outcomes per sink on reg.
func (d *Dispatcher) WithMetrics(reg prometheus.Registerer) *Dispatcher {
	d.deliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_deliveries_total",
		Help: "Order deliveries by sink and result.",
	}, []string{"sink", "result"})
	reg.MustRegister(d.deliveries)
	return d
}

// Dispatch returns immediately. The sinks run on a context that keeps ctx's
// values but ignores its cancellation, so a closed request does not abort an
// order already handed off. The channel has room for every result and is
// closed once all sinks have reported, so callers may ignore it.
func (d *Dispatcher) Dispatch(ctx context.Context, order domain.OrderPayload) <-chan domain.DeliveryResult {
	results := make(chan domain.DeliveryResult, len(d.sinks))
	detached := context.WithoutCancel(ctx)
	log := logger.FromContext(detached)

	var wg sync.WaitGroup
	for _, sink := range d.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			err := s.Deliver(detached, order)
			if err != nil {
				log.Error().Err(err).
					Str("sink", s.Name()).
					Str("order_id", order.OrderID).
					Msg("order delivery failed")
			} else {
				log.Info().
					Str("sink", s.Name()).
					Str("order_id", order.OrderID).
					Msg("order delivered")
			}
			if d.deliveries != nil {
				result := "ok"
				if err != nil {
					result = "error"
				}
				d.deliveries.WithLabelValues(s.Name(), result).Inc()
			}
			results <- domain.DeliveryResult{Sink: s.Name(), OrderID: order.OrderID, Err: err}
		}(sink)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
