package dto

import "github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"

// PromptRequest carries a prompt
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// ImageMetadata describes the generated image
type ImageMetadata struct {
	ImageSize        int64  `json:"imageSize"`
	Format           string `json:"format"`
	CreditsUsed      int64  `json:"creditsUsed"`
	RemainingCredits int64  `json:"remainingCredits"`
}

// ImageResponse is the generate-image body for both outcomes
type ImageResponse struct {
	Success        bool           `json:"success"`
	Code           int            `json:"code,omitempty"`
	Message        string         `json:"message"`
	ResultImage    string         `json:"resultImage,omitempty"`
	Metadata       *ImageMetadata `json:"metadata,omitempty"`
	CreditBalance  *int64         `json:"creditBalance,omitempty"`
	Suggestions    []string       `json:"suggestions,omitempty"`
	OriginalPrompt string         `json:"originalPrompt,omitempty"`
	RetryAfter     int            `json:"retryAfter,omitempty"`
}

// EnhanceResponse previews a prompt rewrite
type EnhanceResponse struct {
	Success    bool     `json:"success"`
	Original   string   `json:"original"`
	Enhanced   string   `json:"enhanced"`
	Variations []string `json:"variations"`
}

// NewImageResponse maps a use case result
func NewImageResponse(r *usecase.ImageResult) ImageResponse {
	resp := ImageResponse{
		Success:        r.Success,
		Message:        r.Message,
		ResultImage:    r.ResultImage,
		CreditBalance:  r.CreditBalance,
		Suggestions:    r.Suggestions,
		OriginalPrompt: r.OriginalPrompt,
		RetryAfter:     r.RetryAfter,
	}
	if r.Metadata != nil {
		resp.Metadata = &ImageMetadata{
			ImageSize:        r.Metadata.ImageSize,
			Format:           r.Metadata.Format,
			CreditsUsed:      r.Metadata.CreditsUsed,
			RemainingCredits: r.Metadata.RemainingCredits,
		}
	}
	return resp
}
