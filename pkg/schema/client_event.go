package schema

import "time"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "productlist",
	"name": "client_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "result_count", "type": "long"},
		{"name": "fallback", "type": "boolean"},
		{"name": "destination", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ClientEventV1 struct {
	EventID     string    `avro:"event_id"`
	Kind        string    `avro:"kind"`
	Query       string    `avro:"query"`
	ResultCount int64     `avro:"result_count"`
	Fallback    bool      `avro:"fallback"`
	Destination string    `avro:"destination"`
	ProductID   string    `avro:"product_id"`
	OccurredAt  time.Time `avro:"occurred_at"`
}
