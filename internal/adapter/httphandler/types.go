package httphandler

import "github.com/niksmo/productlist/internal/core/domain"

type (
	ListView struct {
		Loading        bool        `json:"loading"`
		LoadingMessage string      `json:"loading_message,omitempty"`
		Error          *string     `json:"error"`
		SearchText     string      `json:"search_text"`
		ResultsLabel   string      `json:"results_label,omitempty"`
		Products       []Card      `json:"products"`
		Empty          *EmptyState `json:"empty,omitempty"`
	}

	Card struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Stock         int       `json:"stock"`
		Category      string    `json:"category"`
		Location      string    `json:"location"`
		Status        string    `json:"status"`
		Price         *float64  `json:"price,omitempty"`
		Description   *string   `json:"description,omitempty"`
		Image         *string   `json:"image,omitempty"`
		StockLabel    string    `json:"stock_label"`
		CategoryLabel string    `json:"category_label"`
		LocationLabel string    `json:"location_label"`
		PriceLabel    string    `json:"price_label,omitempty"`
		Thumbnail     Thumbnail `json:"thumbnail"`
	}

	Thumbnail struct {
		Text string `json:"text,omitempty"`
		Icon string `json:"icon,omitempty"`
	}

	EmptyState struct {
		Message string `json:"message"`
		Hint    string `json:"hint,omitempty"`
	}
)

type SearchRequest struct {
	Text string `json:"text"`
}

type NavigationRequest struct {
	Destination string `json:"destination"`
	ProductID   string `json:"product_id"`
}

type Route struct {
	Destination string            `json:"destination"`
	Params      map[string]string `json:"params,omitempty"`
}

func fromDomainView(v domain.ListView) ListView {
	out := ListView{
		Loading:        v.Loading,
		LoadingMessage: v.LoadingMessage,
		SearchText:     v.SearchText,
		ResultsLabel:   v.ResultsLabel,
		Products:       make([]Card, len(v.Products)),
	}
	if v.Error != "" {
		out.Error = &v.Error
	}
	if v.Empty != nil {
		out.Empty = &EmptyState{Message: v.Empty.Message, Hint: v.Empty.Hint}
	}
	for i, c := range v.Products {
		out.Products[i] = fromDomainCard(c)
	}
	return out
}

func fromDomainCard(c domain.Card) Card {
	p := c.Product
	return Card{
		ID:            p.ID,
		Name:          p.Name,
		Stock:         p.Stock,
		Category:      p.Category,
		Location:      p.Location,
		Status:        string(p.Status),
		Price:         p.Price,
		Description:   p.Description,
		Image:         p.Image,
		StockLabel:    c.StockLabel,
		CategoryLabel: c.CategoryLabel,
		LocationLabel: c.LocationLabel,
		PriceLabel:    c.PriceLabel,
		Thumbnail: Thumbnail{
			Text: c.Thumbnail.Text,
			Icon: c.Thumbnail.Icon,
		},
	}
}
