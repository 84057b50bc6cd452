package models

// Plant is the catalog entity as served by the plant API. The cart only ever
// reads it; it is fetched fresh on every add and snapshotted into the line item.
type Plant struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ScientificName string  `json:"scientificName,omitempty"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price"`
	Image          string  `json:"image,omitempty"`
	Category       string  `json:"category,omitempty"`
	InStock        bool    `json:"inStock"`
	StockQuantity  int     `json:"stockQuantity"`
}
