package domain

import "time"

type ClientEventKind string

const (
	EventSearch   ClientEventKind = "search"
	EventLoad     ClientEventKind = "load"
	EventNavigate ClientEventKind = "navigate"
)

// A ClientEvent describes one user-visible action on the product list.
type ClientEvent struct {
	ID          string
	Kind        ClientEventKind
	Query       string
	ResultCount int
	Fallback    bool
	Destination Destination
	ProductID   string
	OccurredAt  time.Time
}
