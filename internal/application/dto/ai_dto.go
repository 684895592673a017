package dto

// DescribeProductRequest entrada para generar una descripción de producto.
type DescribeProductRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Keywords []string `json:"keywords" validate:"omitempty,max=10,dive,max=50"`
}

// DescribeProductResponse descripción generada por el modelo.
type DescribeProductResponse struct {
	Description string `json:"description"`
}

// SuggestCategoryRequest entrada para sugerir una categoría del catálogo.
type SuggestCategoryRequest struct {
	ProductName string   `json:"product_name" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	Categories  []string `json:"categories" validate:"required,min=1,max=100,dive,max=120"`
}

// SuggestCategoryResponse categoría sugerida con nivel de confianza.
type SuggestCategoryResponse struct {
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"`
	Reasoning       string  `json:"reasoning"`
}
