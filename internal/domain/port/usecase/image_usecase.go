package usecase

import (
	"context"
)

// ImageMetadata describes a generated image
type ImageMetadata struct {
	ImageSize        int64 // kilobytes, rounded
	Format           string
	CreditsUsed      int64
	RemainingCredits int64
}

// ImageResult contains info about a generation attempt
// On failure the extra fields carry what the client needs to retry
type ImageResult struct {
	Success        bool
	Message        string
	ResultImage    string // data URL
	Metadata       *ImageMetadata
	CreditBalance  *int64
	Suggestions    []string
	OriginalPrompt string
	RetryAfter     int
	StatusCode     int // HTTP status code
}

// PromptResult is the cleaned prompt and its styled variations
type PromptResult struct {
	Original   string
	Enhanced   string
	Variations []string
}

// ImageUseCase defines methods for image generation
type ImageUseCase interface {
	// GenerateImage spends one credit on a generated image
	GenerateImage(ctx context.Context, userID string, prompt string) (*ImageResult, error)

	// EnhancePrompt previews the prompt rewrite without calling the provider
	EnhancePrompt(prompt string) (*PromptResult, error)
}
