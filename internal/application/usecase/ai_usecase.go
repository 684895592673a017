package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ports"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// AIUseCase orquesta las utilidades de texto asistidas por IA.
// Aplica un timeout de 10 segundos en cada llamada al LLM para evitar
// que las latencias externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
// llm puede ser nil si no hay API key configurada; las operaciones devuelven
// ErrAIUnavailable en ese caso.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// DescribeProduct valida la entrada y delega al servicio de LLM.
func (uc *AIUseCase) DescribeProduct(ctx context.Context, req dto.DescribeProductRequest) (*dto.DescribeProductResponse, error) {
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	text, err := uc.llm.GenerateProductDescription(ctx, req.Name, req.Keywords)
	if err != nil {
		return nil, fmt.Errorf("descripción IA: %w", err)
	}
	return &dto.DescribeProductResponse{Description: text}, nil
}

// SuggestCategory sugiere la mejor categoría del catálogo para un producto.
func (uc *AIUseCase) SuggestCategory(ctx context.Context, req dto.SuggestCategoryRequest) (*dto.SuggestCategoryResponse, error) {
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	if req.ProductName == "" || len(req.Categories) == 0 {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := uc.llm.SuggestCategory(ctx, req.ProductName, req.Description, req.Categories)
	if err != nil {
		return nil, fmt.Errorf("sugerencia de categoría IA: %w", err)
	}
	return result, nil
}
