package domain

import "time"

type LoadSource string

const (
	SourceRemote   LoadSource = "remote"
	SourceFallback LoadSource = "fallback"

	// SourceSuperseded marks a load whose result was dropped because a
	// newer load started while it was in flight.
	SourceSuperseded LoadSource = "superseded"
)

type LoadResult struct {
	ID       string
	Source   LoadSource
	Count    int
	Duration time.Duration
	Err      error
}
