package service

import (
	"fmt"

	"github.com/niksmo/productlist/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	LoadingMessage = "Loading products..."

	NoResultsMessage   = "No products found"
	NoResultsHint      = "Try searching with different keywords"
	NoProductsMessage  = "No products available"
	ImageThumbnailText = "IMG"
	DefaultProductIcon = "shirt-outline"
	currencySymbol     = "฿"

	maxPriceFractionDigits = 3
)

var pricePrinter = message.NewPrinter(language.English)

// ResultsLabel returns "1 product found" or "<n> products found".
func ResultsLabel(n int) string {
	if n == 1 {
		return "1 product found"
	}
	return fmt.Sprintf("%d products found", n)
}

func EmptyStateFor(searchText string) *domain.EmptyState {
	if searchText != "" {
		return &domain.EmptyState{Message: NoResultsMessage, Hint: NoResultsHint}
	}
	return &domain.EmptyState{Message: NoProductsMessage}
}

func CardOf(p domain.Product) domain.Card {
	c := domain.Card{
		Product:       p,
		StockLabel:    fmt.Sprintf("Stock: %d in stock", p.Stock),
		CategoryLabel: "Category: " + p.Category,
		LocationLabel: "Location: " + p.Location,
		PriceLabel:    PriceLabel(p.Price),
	}
	if p.Image != nil && *p.Image != "" {
		c.Thumbnail.Text = ImageThumbnailText
	} else {
		c.Thumbnail.Icon = DefaultProductIcon
	}
	return c
}

// PriceLabel formats the price with thousands grouping and at most three
// fraction digits, trailing zeros dropped. Missing and zero prices are not
// shown.
func PriceLabel(price *float64) string {
	if price == nil || *price == 0 {
		return ""
	}
	amount := number.Decimal(*price, number.MaxFractionDigits(maxPriceFractionDigits))
	return currencySymbol + pricePrinter.Sprint(amount)
}

func buildView(
	loading bool, errMsg, searchText string, ps []domain.Product,
) domain.ListView {
	v := domain.ListView{
		Loading:    loading,
		Error:      errMsg,
		SearchText: searchText,
	}
	if loading {
		v.LoadingMessage = LoadingMessage
		return v
	}

	filtered := FilterProducts(ps, searchText)
	if len(filtered) == 0 {
		v.Empty = EmptyStateFor(searchText)
		return v
	}

	v.ResultsLabel = ResultsLabel(len(filtered))
	v.Products = make([]domain.Card, len(filtered))
	for i, p := range filtered {
		v.Products[i] = CardOf(p)
	}
	return v
}
