package image

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"net/http"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// Client-facing messages
const (
	MsgPromptRequired     = "Prompt is required"
	MsgPromptTooLong      = "Prompt too long (max 500 characters)"
	MsgUserNotFound       = "User not found"
	MsgNoCreditBalance    = "No credit balance"
	MsgImageGenerated     = "Image generated successfully"
	MsgPromptRejected     = "Unable to generate image from this prompt"
	MsgInvalidAPIKey      = "API key is invalid or missing. Please contact support."
	MsgRateLimited        = "Rate limit exceeded. Please wait a moment before trying again."
	MsgTimeout            = "Request timeout. Please try again with a simpler prompt."
	MsgServiceUnavailable = "Service temporarily unavailable. Please try again later."
	MsgUnexpected         = "An unexpected error occurred"
)

const (
	imageFormat      = "PNG"
	creditsPerImage  = 1
	retryAfterSecond = 60
	dataURLPrefix    = "data:image/png;base64,"
)

// Metric outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Service generates images and charges one credit per image
type Service struct {
	users     usecase.UserUseCase
	credits   usecase.CreditUseCase
	generator gateway.ImageGenerator
	logger    coreport.Logger
	metrics   coreport.Metrics
}

// NewService creates a new image service
func NewService(
	users usecase.UserUseCase,
	credits usecase.CreditUseCase,
	generator gateway.ImageGenerator,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Service {
	return &Service{
		users:     users,
		credits:   credits,
		generator: generator,
		logger:    logger,
		metrics:   metrics,
	}
}

var _ usecase.ImageUseCase = (*Service)(nil)

// GenerateImage validates the prompt, checks the balance, calls the provider and consumes a credit
func (s *Service) GenerateImage(ctx context.Context, userID string, prompt string) (*usecase.ImageResult, error) {
	if err := ValidatePrompt(prompt); err != nil {
		s.metrics.ImageGenerated(OutcomeRejected)
		if errors.Is(err, errs.ErrPromptTooLong) {
			return imageFailure(http.StatusBadRequest, MsgPromptTooLong), err
		}
		return imageFailure(http.StatusBadRequest, MsgPromptRequired), err
	}

	enhanced := EnhancePrompt(prompt)

	user, err := s.users.GetCredits(ctx, userID)
	if err != nil {
		s.metrics.ImageGenerated(OutcomeRejected)
		if errs.IsUserNotFoundError(err) {
			return imageFailure(http.StatusNotFound, MsgUserNotFound), err
		}
		return imageFailure(http.StatusInternalServerError, MsgUnexpected), err
	}

	if user.CreditBalance() <= 0 {
		s.metrics.ImageGenerated(OutcomeRejected)
		return noCredits(user.CreditBalance()), errs.NewInsufficientCreditsError(userID, creditsPerImage, user.CreditBalance())
	}

	s.logger.Debug("Generating image", map[string]any{
		"user_id":         userID,
		"prompt":          prompt,
		"enhanced_prompt": enhanced,
	})

	data, err := s.generator.Generate(ctx, enhanced)
	if err == nil && len(data) == 0 {
		err = errs.ErrEmptyImage
	}
	if err != nil {
		s.metrics.ImageGenerated(OutcomeFailed)
		fields := map[string]any{
			"user_id":         userID,
			"prompt":          prompt,
			"enhanced_prompt": enhanced,
			"error":           err.Error(),
		}
		if perr, ok := errs.AsProviderError(err); ok {
			for k, v := range perr.LogFields() {
				fields[k] = v
			}
		}
		s.logger.Error("Image generation failed", fields)
		return providerFailure(err, prompt), err
	}

	// charge only after the provider delivered
	updated, err := s.credits.Consume(ctx, userID, creditsPerImage)
	if err != nil {
		s.metrics.ImageGenerated(OutcomeRejected)
		if errs.IsInsufficientCreditsError(err) {
			return noCredits(0), err
		}
		if errs.IsUserNotFoundError(err) {
			return imageFailure(http.StatusNotFound, MsgUserNotFound), err
		}
		return imageFailure(http.StatusInternalServerError, MsgUnexpected), err
	}

	sizeKB := int64(math.Round(float64(len(data)) / 1024))
	s.metrics.ImageGenerated(OutcomeSuccess)
	s.logger.Info("Image generated", map[string]any{
		"user_id":           userID,
		"image_size_kb":     sizeKB,
		"remaining_credits": updated.CreditBalance(),
	})

	return &usecase.ImageResult{
		Success:     true,
		Message:     MsgImageGenerated,
		ResultImage: dataURLPrefix + base64.StdEncoding.EncodeToString(data),
		Metadata: &usecase.ImageMetadata{
			ImageSize:        sizeKB,
			Format:           imageFormat,
			CreditsUsed:      creditsPerImage,
			RemainingCredits: updated.CreditBalance(),
		},
		StatusCode: http.StatusOK,
	}, nil
}

// EnhancePrompt previews the prompt rewrite without spending credits
func (s *Service) EnhancePrompt(prompt string) (*usecase.PromptResult, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	variations := Variations(prompt)
	return &usecase.PromptResult{
		Original:   prompt,
		Enhanced:   variations[0],
		Variations: variations,
	}, nil
}

func imageFailure(status int, message string) *usecase.ImageResult {
	return &usecase.ImageResult{
		Success:    false,
		Message:    message,
		StatusCode: status,
	}
}

func noCredits(balance int64) *usecase.ImageResult {
	result := imageFailure(http.StatusBadRequest, MsgNoCreditBalance)
	result.CreditBalance = &balance
	return result
}

// providerFailure maps an upstream failure to the client response
func providerFailure(err error, prompt string) *usecase.ImageResult {
	if perr, ok := errs.AsProviderError(err); ok {
		switch perr.StatusCode {
		case http.StatusUnprocessableEntity:
			result := imageFailure(http.StatusUnprocessableEntity, MsgPromptRejected)
			result.Suggestions = Suggestions(prompt)
			result.OriginalPrompt = prompt
			return result
		case http.StatusUnauthorized:
			return imageFailure(http.StatusUnauthorized, MsgInvalidAPIKey)
		case http.StatusTooManyRequests:
			result := imageFailure(http.StatusTooManyRequests, MsgRateLimited)
			result.RetryAfter = retryAfterSecond
			return result
		}

		status := perr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		message := perr.Message
		if message == "" {
			message = MsgUnexpected
		}
		return imageFailure(status, message)
	}

	switch {
	case errors.Is(err, errs.ErrProviderTimeout):
		return imageFailure(http.StatusGatewayTimeout, MsgTimeout)
	case errors.Is(err, errs.ErrProviderUnavailable):
		return imageFailure(http.StatusServiceUnavailable, MsgServiceUnavailable)
	case errors.Is(err, errs.ErrEmptyImage):
		return imageFailure(http.StatusInternalServerError, "Empty response from image generation service")
	default:
		return imageFailure(http.StatusInternalServerError, MsgUnexpected)
	}
}
