package domain

import "errors"

var (
	// ErrNetwork is a transport failure reaching the catalog endpoint.
	ErrNetwork = errors.New("network error")

	// ErrFetch is a non-success HTTP status from the catalog endpoint.
	ErrFetch = errors.New("fetch error")

	// ErrParse is a body that is not valid JSON or not a product list.
	ErrParse = errors.New("parse error")

	ErrInvalidRoute = errors.New("invalid route")
)

// LoadFailedMessage is the only error text a failed load ever shows.
const LoadFailedMessage = "Failed to load products"
