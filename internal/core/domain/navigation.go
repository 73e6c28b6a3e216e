package domain

import "fmt"

type Destination string

const (
	DestinationProductDetail Destination = "ProductDetail"
	DestinationAddProduct    Destination = "AddProduct"
	DestinationProfile       Destination = "Profile"
	DestinationCategories    Destination = "Categories"
	DestinationHome          Destination = "Home"
)

const ParamProductID = "productId"

func ParseDestination(s string) (Destination, error) {
	d := Destination(s)
	switch d {
	case DestinationProductDetail, DestinationAddProduct,
		DestinationProfile, DestinationCategories, DestinationHome:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown destination %q", ErrInvalidRoute, s)
}

type Route struct {
	Destination Destination
	Params      map[string]string
}

func (r Route) ProductID() string {
	return r.Params[ParamProductID]
}
