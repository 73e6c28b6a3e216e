package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
)

var _ port.Navigator = (*Navigator)(nil)

// A Navigator records route requests of the product list. The client app
// performs the actual screen transition.
type Navigator struct {
	events port.ClientEventsProducer
}

// New returns a Navigator. events may be nil, then routes are only logged.
func New(events port.ClientEventsProducer) Navigator {
	return Navigator{events}
}

func (n Navigator) Navigate(ctx context.Context, r domain.Route) error {
	const op = "Navigator.Navigate"
	log := slog.With("op", op)

	log.Info("navigation requested",
		"destination", r.Destination, "params", r.Params)

	if n.events == nil {
		return nil
	}

	ev := domain.ClientEvent{
		ID:          uuid.NewString(),
		Kind:        domain.EventNavigate,
		Destination: r.Destination,
		ProductID:   r.ProductID(),
		OccurredAt:  time.Now(),
	}
	if err := n.events.ProduceEvent(ctx, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
