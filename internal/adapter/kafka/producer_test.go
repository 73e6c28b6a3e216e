package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockClient struct {
	mock.Mock
}

func (c *MockClient) Produce(
	ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error),
) {
	args := c.Called(ctx, r)
	promise(r, args.Error(0))
}

func (c *MockClient) Flush(ctx context.Context) error {
	return c.Called(ctx).Error(0)
}

func (c *MockClient) Close() {
	c.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (e *MockEncoder) Encode(v any) ([]byte, error) {
	args := e.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestClientEventsProducer(t *testing.T) {
	occurred := time.UnixMilli(1760000000000)
	ev := domain.ClientEvent{
		ID:          "id-1",
		Kind:        domain.EventSearch,
		Query:       "shirt",
		ResultCount: 3,
		OccurredAt:  occurred,
	}
	wantSchema := schema.ClientEventV1{
		EventID:     "id-1",
		Kind:        "search",
		Query:       "shirt",
		ResultCount: 3,
		OccurredAt:  occurred,
	}

	t.Run("TooFewOptsPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewClientEventsProducer(ProducerWithClientOpt(new(MockClient)))
		})
	})

	t.Run("Produce", func(t *testing.T) {
		cl := new(MockClient)
		enc := new(MockEncoder)
		enc.On("Encode", wantSchema).Return([]byte("payload"), nil)
		cl.On("Produce", mock.Anything, mock.MatchedBy(func(r *kgo.Record) bool {
			return string(r.Key) == "search" && string(r.Value) == "payload"
		})).Return(nil)

		p, err := NewClientEventsProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)

		require.NoError(t, p.ProduceEvent(t.Context(), ev))
		cl.AssertExpectations(t)
		enc.AssertExpectations(t)
	})

	t.Run("DeliveryErrorIsNotReturned", func(t *testing.T) {
		cl := new(MockClient)
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything).Return([]byte("payload"), nil)
		cl.On("Produce", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		p, err := NewClientEventsProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)
		assert.NoError(t, p.ProduceEvent(t.Context(), ev))
	})

	t.Run("EncodeError", func(t *testing.T) {
		errEncode := errors.New("bad schema")
		cl := new(MockClient)
		enc := new(MockEncoder)
		enc.On("Encode", mock.Anything).Return(nil, errEncode)

		p, err := NewClientEventsProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(enc),
		)
		require.NoError(t, err)

		assert.ErrorIs(t, p.ProduceEvent(t.Context(), ev), errEncode)
		cl.AssertNotCalled(t, "Produce", mock.Anything, mock.Anything)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		p, err := NewClientEventsProducer(
			ProducerWithClientOpt(new(MockClient)),
			ProducerEncoderOpt(new(MockEncoder)),
		)
		require.NoError(t, err)
		assert.ErrorIs(t, p.ProduceEvent(ctx, ev), context.Canceled)
	})

	t.Run("CloseFlushes", func(t *testing.T) {
		cl := new(MockClient)
		cl.On("Flush", mock.Anything).Return(nil).Once()
		cl.On("Close").Once()

		p, err := NewClientEventsProducer(
			ProducerWithClientOpt(cl), ProducerEncoderOpt(new(MockEncoder)),
		)
		require.NoError(t, err)
		p.Close()
		cl.AssertExpectations(t)
	})
}
