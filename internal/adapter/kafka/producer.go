package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsProducer = (*ClientEventsProducer)(nil)

const flushTimeout = 5 * time.Second

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := p.cl.Flush(ctx); err != nil {
		log.Error("failed to flush buffered records", "err", err)
	}

	p.cl.Close()
	log.Info("producer is closed")
}

// produce buffers the record and returns. Delivery failures are logged
// by the promise.
func (p producer) produce(ctx context.Context, r *kgo.Record) {
	const op = "produce"
	p.cl.Produce(ctx, r, func(r *kgo.Record, err error) {
		if err != nil {
			slog.Error("failed to deliver record",
				"op", makeOp(p.opPrefix, op),
				"topic", r.Topic, "err", err)
		}
	})
}

// A ClientEventsProducer used for produce [domain.ClientEvent]
type ClientEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ClientEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ClientEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return ClientEventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p ClientEventsProducer) Close() {
	p.producer.close()
}

// ProduceEvent encodes the event and hands it to the client without
// waiting for the broker acknowledgement.
func (p ClientEventsProducer) ProduceEvent(
	ctx context.Context, ev domain.ClientEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(ev)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	p.producer.produce(context.WithoutCancel(ctx), r)
	return nil
}

func (p ClientEventsProducer) createRecord(
	v domain.ClientEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := clientEventToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Kind), Value: b}, nil
}
