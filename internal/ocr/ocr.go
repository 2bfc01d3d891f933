// Package ocr runs optical character recognition over receipt images.
// The recognizer is a port; the production adapter is Azure Computer
// Vision printed-text OCR.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	applog "billscan/internal/log"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// ErrRecognition wraps any engine failure. Callers treat it as "no
// usable text" and degrade gracefully rather than aborting the
// pipeline.
var ErrRecognition = errors.New("text recognition failed")

// Recognizer extracts text from raw image bytes. Line breaks are
// preserved; no bounding boxes or confidence scores are surfaced.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// AzureService recognizes printed text through the Azure Computer
// Vision OCR endpoint.
type AzureService struct {
	client *computervision.BaseClient
	logger *applog.Logger
}

// NewAzureService creates a recognizer for the given Computer Vision
// endpoint and API key.
func NewAzureService(endpoint, apiKey string, logger *applog.Logger) *AzureService {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureService{
		client: &client,
		logger: logger.WithComponent(applog.ComponentOCR),
	}
}

func (s *AzureService) Recognize(ctx context.Context, image []byte) (string, error) {
	reader := io.NopCloser(bytes.NewReader(image))
	result, err := s.client.RecognizePrintedTextInStream(
		ctx,
		true,
		reader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		s.logger.WarnContext(ctx, "OCR engine failure", applog.FieldError, err.Error())
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	text := flattenResult(result)
	s.logger.DebugContext(ctx, "Recognized text", applog.FieldTextLen, len(text))
	return text, nil
}

// flattenResult joins the engine's regions, lines and words into one
// text block, one recognized line per output line. Line order is the
// engine's encounter order and is not guaranteed to match visual
// reading order on complex layouts.
func flattenResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}
	var b strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) > 0 {
				b.WriteString(strings.Join(words, " "))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
