package domain

import "time"

// ProductSort selects the ordering of a product listing.
type ProductSort string

const (
	SortDateNewToOld ProductSort = "date: new to old"
	SortDateOldToNew ProductSort = "date: old to new"
	SortPriceLowHigh ProductSort = "price: low to high"
	SortPriceHighLow ProductSort = "price: high to low"
	MaxProductPhotos             = 5
)

// ParseProductSort maps the public sort parameter to a ProductSort. Unknown or
// empty values fall back to newest first.
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortDateOldToNew, SortPriceLowHigh, SortPriceHighLow:
		return ProductSort(s)
	default:
		return SortDateNewToOld
	}
}

// Photo is an image stored on the image host.
type Photo struct {
	ImageURL string `json:"image_url" bson:"image_url"`
	PublicID string `json:"public_id" bson:"public_id"`
}

// Category groups products. Names are stored lower-cased.
type Category struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// Product is a listing owned by a supplier. The supplier's name, city and
// division are copied onto the product at creation so listings can be
// filtered without a join; suppliers are never mutated after registration.
type Product struct {
	ID               string    `json:"id" bson:"_id"`
	SupplierID       string    `json:"supplier_id" bson:"supplier_id"`
	SupplierName     string    `json:"supplier_name" bson:"supplier_name"`
	SupplierCity     string    `json:"city" bson:"supplier_city"`
	SupplierDivision string    `json:"division" bson:"supplier_division"`
	CategoryID       string    `json:"category_id" bson:"category_id"`
	CategoryName     string    `json:"category" bson:"category_name"`
	SubCategory      string    `json:"sub_category" bson:"sub_category"`
	Name             string    `json:"name" bson:"name"`
	Price            float64   `json:"price" bson:"price"`
	Description      string    `json:"description" bson:"description"`
	BuyersCount      int       `json:"buyers_count" bson:"buyers_count"`
	Brand            string    `json:"brand" bson:"brand"`
	Thumbnail        Photo     `json:"thumbnail" bson:"thumbnail"`
	Photos           []Photo   `json:"photos" bson:"photos"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
}

// PublicIDs returns every image-host id referenced by the product, thumbnail
// included.
func (p *Product) PublicIDs() []string {
	ids := make([]string, 0, len(p.Photos)+1)
	for _, ph := range p.Photos {
		if ph.PublicID != "" {
			ids = append(ids, ph.PublicID)
		}
	}
	if p.Thumbnail.PublicID != "" {
		ids = append(ids, p.Thumbnail.PublicID)
	}
	return ids
}
