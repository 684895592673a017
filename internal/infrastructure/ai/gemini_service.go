package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// describePrompt define el rol del modelo para redactar descripciones.
	// response_mime_type=application/json obliga a Gemini a devolver JSON puro,
	// eliminando la necesidad de limpiar bloques de markdown.
	describePrompt = `Eres un redactor comercial para un comercio minorista en Colombia.
Dado el nombre de un producto y palabras clave opcionales, devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{
  "description": "<descripción de venta en español, entre 30 y 60 palabras, sin emojis ni mayúsculas sostenidas>"
}

Reglas:
- Tono claro y concreto, orientado a pequeños negocios.
- No inventes especificaciones técnicas que no estén en las palabras clave.`

	// categoryPrompt define el rol del modelo para clasificar en el catálogo.
	categoryPrompt = `Eres un asistente de catálogo para un comercio minorista.
Dado el nombre y descripción de un producto y la lista de categorías disponibles, devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{
  "category": "<una categoría EXACTA de la lista proporcionada>",
  "confidence_score": <número decimal entre 0.0 y 1.0>,
  "reasoning": "<explicación concisa en español, máximo 200 caracteres>"
}

Reglas:
- category debe ser una de las categorías de la lista, copiada literalmente.
- confidence_score: 0.9–1.0 = certeza alta, 0.7–0.89 = probable, <0.7 = estimado.`
)

// GeminiService adaptador que implementa LLMService llamando a la API REST de
// Google Gemini. Usa únicamente net/http para no añadir dependencias externas.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type descriptionPayload struct {
	Description string `json:"description"`
}

type categoryPayload struct {
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidence_score"`
	Reasoning       string  `json:"reasoning"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerateProductDescription llama a Gemini y devuelve la descripción redactada.
func (s *GeminiService) GenerateProductDescription(ctx context.Context, name string, keywords []string) (string, error) {
	userText := "Nombre del producto: " + name
	if len(keywords) > 0 {
		userText += "\nPalabras clave: " + strings.Join(keywords, ", ")
	}

	raw, err := s.generate(ctx, describePrompt, userText, 0.7, 256)
	if err != nil {
		return "", err
	}

	var payload descriptionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, raw)
	}
	if strings.TrimSpace(payload.Description) == "" {
		return "", fmt.Errorf("AI: el modelo devolvió descripción vacía")
	}
	return strings.TrimSpace(payload.Description), nil
}

// SuggestCategory llama a Gemini con el catálogo y devuelve la mejor categoría.
func (s *GeminiService) SuggestCategory(ctx context.Context, productName, description string, categories []string) (*dto.SuggestCategoryResponse, error) {
	userText := fmt.Sprintf(
		"Nombre del producto: %s\nDescripción: %s\nCategorías disponibles:\n- %s",
		productName, description, strings.Join(categories, "\n- "),
	)

	raw, err := s.generate(ctx, categoryPrompt, userText, 0.2, 256)
	if err != nil {
		return nil, err
	}

	var payload categoryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, raw)
	}

	// El modelo debe responder con una categoría literal de la lista; si se
	// desvía, elegir la primera coincidencia insensible a mayúsculas.
	category := payload.Category
	if !contains(categories, category) {
		category = closestMatch(categories, category)
		if category == "" {
			return nil, fmt.Errorf("AI: categoría %q fuera del catálogo", payload.Category)
		}
	}

	confidence := payload.ConfidenceScore
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &dto.SuggestCategoryResponse{
		Category:        category,
		ConfidenceScore: confidence,
		Reasoning:       payload.Reasoning,
	}, nil
}

// generate hace la llamada HTTP a Gemini y devuelve el texto del primer candidato.
func (s *GeminiService) generate(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: user}},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      temperature,
			MaxOutputTokens:  maxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func closestMatch(list []string, s string) string {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return v
		}
	}
	return ""
}
