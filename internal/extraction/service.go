package extraction

import (
	"context"
	"fmt"

	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	pkgerrors "github.com/Abhi-engg/farmstand-backend/pkg/errors"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
	"go.uber.org/multierr"
)

const extractionPrompt = "Extract all readable text from this image. " +
	"Return only the extracted text, with no commentary."

// Result is the outcome of one extraction call. Note is set when the
// primary model failed and the fallback produced the text.
type Result struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Note  string `json:"note,omitempty"`
}

// Input carries the uploaded image.
type Input struct {
	Image    []byte
	MimeType string
}

// Service turns an uploaded image into extracted text via the generative
// AI backend, with one automatic fallback model attempt.
type Service interface {
	ExtractText(ctx context.Context, input Input) (*Result, error)
}

type textExtractor interface {
	Configured() bool
	ExtractTextFromImage(ctx context.Context, model, prompt, mimeType string, image []byte) (string, error)
}

type service struct {
	extractor textExtractor
	cfg       config.GeminiConfig
	logg      *logger.Logger
}

// ServiceParams bundles the extraction service dependencies.
type ServiceParams struct {
	Extractor textExtractor
	Config    config.GeminiConfig
	Logger    *logger.Logger
}

// NewService constructs the extraction service.
func NewService(params ServiceParams) (Service, error) {
	if params.Extractor == nil {
		return nil, fmt.Errorf("extractor client is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.Config.PrimaryModel == "" {
		return nil, fmt.Errorf("primary model is required")
	}
	return &service{
		extractor: params.Extractor,
		cfg:       params.Config,
		logg:      params.Logger,
	}, nil
}

func (s *service) ExtractText(ctx context.Context, input Input) (*Result, error) {
	if !s.extractor.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "text extraction is not configured")
	}
	if len(input.Image) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
	}
	if input.MimeType == "" {
		input.MimeType = "image/jpeg"
	}

	text, primaryErr := s.extractor.ExtractTextFromImage(
		ctx, s.cfg.PrimaryModel, extractionPrompt, input.MimeType, input.Image)
	if primaryErr == nil {
		return &Result{Text: text, Model: s.cfg.PrimaryModel}, nil
	}

	if s.cfg.FallbackModel == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, primaryErr, "extract text")
	}

	s.logg.Warn(ctx, fmt.Sprintf("primary extraction model %s failed, trying %s: %v",
		s.cfg.PrimaryModel, s.cfg.FallbackModel, primaryErr))

	text, fallbackErr := s.extractor.ExtractTextFromImage(
		ctx, s.cfg.FallbackModel, extractionPrompt, input.MimeType, input.Image)
	if fallbackErr != nil {
		combined := multierr.Combine(primaryErr, fallbackErr)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "extract text")
	}

	return &Result{
		Text:  text,
		Model: s.cfg.FallbackModel,
		Note:  fmt.Sprintf("primary model %s unavailable, used fallback", s.cfg.PrimaryModel),
	}, nil
}
