package domain

import (
	"errors"
	"fmt"
	"math"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "Active"
	StatusInactive ProductStatus = "Inactive"
)

func (s ProductStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Product struct {
	ID          string
	Name        string
	Stock       int
	Category    string
	Location    string
	Status      ProductStatus
	Price       *float64
	Description *string
	Image       *string
}

// Validate reports the first field that breaks the product contract.
func (p Product) Validate() error {
	switch {
	case p.ID == "":
		return errors.New("id is required")
	case p.Name == "":
		return errors.New("name is required")
	case p.Category == "":
		return errors.New("category is required")
	case !p.Status.Valid():
		return fmt.Errorf("status %q is not one of Active, Inactive", p.Status)
	case p.Price != nil && (math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0)):
		return errors.New("price is not a finite number")
	}
	return nil
}

// ValidateProducts validates every product and checks ids are unique.
func ValidateProducts(ps []Product) error {
	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product[%d]: %w", i, err)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("product[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func fallbackPrice() *float64 {
	v := 299.0
	return &v
}

// FallbackProducts returns a fresh copy of the built-in sample set shown
// when the remote catalog cannot be loaded.
func FallbackProducts() []Product {
	return []Product{
		{
			ID:       "1",
			Name:     "Unisex T-Shirt White",
			Stock:    12,
			Category: "T-shirts",
			Location: "3 stores",
			Status:   StatusActive,
			Price:    fallbackPrice(),
		},
		{
			ID:       "2",
			Name:     "Unisex T-Shirt Black",
			Stock:    8,
			Category: "T-shirts",
			Location: "2 stores",
			Status:   StatusActive,
			Price:    fallbackPrice(),
		},
		{
			ID:       "3",
			Name:     "Unisex T-Shirt Yellow",
			Stock:    15,
			Category: "T-shirts",
			Location: "4 stores",
			Status:   StatusActive,
			Price:    fallbackPrice(),
		},
	}
}
