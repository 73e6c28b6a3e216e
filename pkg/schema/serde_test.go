package schema_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/niksmo/productlist/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

type MockRegistry struct {
	mock.Mock
}

func (r *MockRegistry) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := r.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestSerdeClientEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierFails", func(t *testing.T) {
		errRegistry := errors.New("registry is down")
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), "events-value", schema.ClientEventSchemaTextV1,
		).Return(0, errRegistry)

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt("events-value"),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		assert.ErrorIs(t, err, errRegistry)
	})

	t.Run("Encode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 7
		subject := "productlist-client-events-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		event1 := schema.ClientEventV1{
			EventID:     "3f1c",
			Kind:        "navigate",
			Destination: "ProductDetail",
			ProductID:   "2",
			ResultCount: 3,
			Fallback:    true,
			OccurredAt:  time.UnixMilli(1760000000123).UTC(),
		}

		encodedData, err := serde.Encode(event1)
		require.NoError(t, err)
		require.Greater(t, len(encodedData), 5)
		assert.Equal(t, byte(0), encodedData[0])
		assert.EqualValues(t, schemaID, binary.BigEndian.Uint32(encodedData[1:5]))

		var event2 schema.ClientEventV1
		err = avro.Unmarshal(
			avro.MustParse(schema.ClientEventSchemaTextV1), encodedData[5:], &event2,
		)
		require.NoError(t, err)

		assert.Equal(t, event1.EventID, event2.EventID)
		assert.Equal(t, event1.Kind, event2.Kind)
		assert.Equal(t, event1.Destination, event2.Destination)
		assert.Equal(t, event1.ProductID, event2.ProductID)
		assert.Equal(t, event1.ResultCount, event2.ResultCount)
		assert.Equal(t, event1.Fallback, event2.Fallback)
		assert.True(t, event1.OccurredAt.Equal(event2.OccurredAt))
	})
}

func TestSchemaCreater(t *testing.T) {
	registry := new(MockRegistry)
	registry.On("CreateSchema", t.Context(), "subj", sr.Schema{
		Schema: schema.ClientEventSchemaTextV1,
		Type:   sr.TypeAvro,
	}).Return(sr.SubjectSchema{ID: 11}, nil)

	id, err := schema.NewSchemaCreater(registry).
		DetermineID(t.Context(), "subj", schema.ClientEventSchemaTextV1)
	require.NoError(t, err)
	assert.Equal(t, 11, id)
	registry.AssertExpectations(t)
}
