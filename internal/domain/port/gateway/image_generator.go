package gateway

import "context"

// ImageGenerator turns a text prompt into PNG bytes
type ImageGenerator interface {
	// Generate calls the text-to-image provider
	//
	// Possible errors:
	// - *ProviderError: The provider answered with a non-2xx status
	// - ErrProviderTimeout: The call exceeded its deadline
	// - ErrProviderUnavailable: The host refused, could not be resolved or the breaker is open
	// - ErrEmptyImage: The provider answered 2xx with an empty body
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
