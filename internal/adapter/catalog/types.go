package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/niksmo/productlist/internal/core/domain"
)

// Product is the remote record. Pointers tell missing fields apart
// from zero values.
type Product struct {
	ID          productID `json:"id"`
	Name        string    `json:"name"`
	Stock       *float64  `json:"stock"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
}

const productsKey = "products"

var productKeys = []string{
	"id", "name", "stock", "category", "location",
	"status", "price", "description", "image",
}

// productID accepts both "12" and 12.
type productID string

func (id *productID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = productID(s)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("id must be a string or an integer, got %s", b)
	}
	*id = productID(strconv.FormatInt(n, 10))
	return nil
}

func (p Product) toDomain() (domain.Product, error) {
	if p.Stock == nil {
		return domain.Product{}, errors.New("stock is required")
	}
	if *p.Stock != math.Trunc(*p.Stock) {
		return domain.Product{}, fmt.Errorf("stock %v is not an integer", *p.Stock)
	}
	if *p.Stock < math.MinInt || *p.Stock >= math.MaxInt {
		return domain.Product{}, fmt.Errorf("stock %v is out of range", *p.Stock)
	}

	dp := domain.Product{
		ID:          string(p.ID),
		Name:        p.Name,
		Stock:       int(*p.Stock),
		Category:    p.Category,
		Location:    p.Location,
		Status:      domain.ProductStatus(p.Status),
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
	}
	return dp, dp.Validate()
}

// checkKeys rejects keys that differ from a known field only by case,
// encoding/json would otherwise match them.
func checkKeys(obj map[string]json.RawMessage, known ...string) error {
	for key := range obj {
		for _, k := range known {
			if key != k && strings.EqualFold(key, k) {
				return fmt.Errorf("key %q must be spelled %q", key, k)
			}
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeProduct(raw json.RawMessage) (domain.Product, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Product{}, err
	}
	if obj == nil {
		return domain.Product{}, errors.New("record is null")
	}
	if err := checkKeys(obj, productKeys...); err != nil {
		return domain.Product{}, err
	}

	var p Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Product{}, err
	}
	return p.toDomain()
}

// decodeProducts accepts {"products": [...]} or a bare array. Keys must be
// spelled exactly.
func decodeProducts(body []byte) ([]domain.Product, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}

	var items json.RawMessage
	switch body[0] {
	case '[':
		items = body
	case '{':
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, err
		}
		raw, ok := doc[productsKey]
		if !ok || isNull(raw) {
			return nil, errors.New(`object has no "products" array`)
		}
		items = raw
	default:
		return nil, errors.New("body is neither an object nor an array")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(items, &records); err != nil {
		return nil, err
	}

	out := make([]domain.Product, len(records))
	for i, raw := range records {
		dp, err := decodeProduct(raw)
		if err != nil {
			return nil, fmt.Errorf("product[%d]: %w", i, err)
		}
		out[i] = dp
	}

	if err := domain.ValidateProducts(out); err != nil {
		return nil, err
	}
	return out, nil
}
