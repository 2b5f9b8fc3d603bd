package rentafija

import (
	"context"
	"errors"

	_ "embed"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// the instruction template is a configuration asset rather than code: it
// encodes the section filters and the TIR Anual column rules the model
// has to honor.
//
//go:embed prompt.txt
var prompt string

var errEmptyResponse = errors.New("No se obtuvo respuesta IA.")

const DefaultModel = "gemini-1.5-flash"

// NewGeminiModel builds the generative client used to read the pdf.
func NewGeminiModel(ctx context.Context, apiKey, model string) (llms.Model, error) {
	if model == "" {
		model = DefaultModel
	}
	return googleai.New(
		ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
}

// extractBonds sends the pdf plus the instruction template to the model
// and decodes the fenced json block out of its reply.
func (s Service) extractBonds(ctx context.Context, pdf []byte) ([]Bond, error) {
	ctx, span := tracer.Start(ctx, "extractBonds")
	defer span.End()

	response, err := s.model.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.BinaryPart("application/pdf", pdf),
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 || response.Choices[0].Content == "" {
		return nil, errEmptyResponse
	}

	return ParseBonds(response.Choices[0].Content)
}
