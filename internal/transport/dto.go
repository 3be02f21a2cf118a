package transport

type CreateProductRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	MetalType   string  `json:"metalType"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// UpdateProductRequest replaces the six mutable product fields wholesale.
// The id comes from the path and is never touched.
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	MetalType   string  `json:"metalType"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type CreateOrderRequest struct {
	UserID     string    `json:"userId"`
	ProductIDs []string  `json:"productIds"`
	Quantities []int     `json:"quantities"`
	Grams      []float64 `json:"grams"`
}
