package domain

// Category is a catalog grouping of products.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
