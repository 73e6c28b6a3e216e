package port

import (
	"context"

	"github.com/niksmo/productlist/internal/core/domain"
)

type (
	closer interface {
		Close()
	}
)

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type Navigator interface {
	Navigate(context.Context, domain.Route) error
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
	closer
}

type LoadObserver interface {
	ObserveLoad(domain.LoadResult)
}

// ProductListController is what the presentation layer drives.
type ProductListController interface {
	View() domain.ListView
	Refresh(context.Context) domain.LoadResult
	Retry(context.Context) domain.LoadResult
	SetSearchText(string)
	ClearSearch()
	Open(context.Context, domain.Route) error
}
