package domain

// ListView is the read model of the product list screen.
type ListView struct {
	Loading        bool
	LoadingMessage string
	Error          string
	SearchText     string
	Products       []Card
	ResultsLabel   string
	Empty          *EmptyState
}

type EmptyState struct {
	Message string
	Hint    string
}

// A Card is one product row with its display labels.
type Card struct {
	Product       Product
	StockLabel    string
	CategoryLabel string
	LocationLabel string
	PriceLabel    string
	Thumbnail     Thumbnail
}

type Thumbnail struct {
	Text string
	Icon string
}
