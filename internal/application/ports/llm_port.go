package ports

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, OpenAI, Ollama, mock) debe implementar esta interfaz.
// La aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// GenerateProductDescription redacta una descripción corta de venta a partir
	// del nombre y palabras clave. El contexto debe llevar timeout.
	GenerateProductDescription(ctx context.Context, name string, keywords []string) (string, error)

	// SuggestCategory elige la categoría del catálogo que mejor encaja con el
	// producto, con nivel de confianza y razonamiento.
	SuggestCategory(ctx context.Context, productName, description string, categories []string) (*dto.SuggestCategoryResponse, error)
}
