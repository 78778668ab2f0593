package image

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/clipdrop"
	applogger "github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
	mockgateway "github.com/amirhossein-jamali/imagify/mocks/port/gateway"
	mockusecase "github.com/amirhossein-jamali/imagify/mocks/port/usecase"
)

type imageFixture struct {
	users     *mockusecase.MockUserUseCase
	credits   *mockusecase.MockCreditUseCase
	generator *mockgateway.MockImageGenerator
	metrics   *mockcore.MockMetrics
	service   *Service
}

func newImageFixture(t *testing.T) *imageFixture {
	f := &imageFixture{
		users:     mockusecase.NewMockUserUseCase(t),
		credits:   mockusecase.NewMockCreditUseCase(t),
		generator: mockgateway.NewMockImageGenerator(t),
		metrics:   mockcore.NewMockMetrics(t),
	}

	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	f.service = NewService(f.users, f.credits, f.generator, logger, f.metrics)
	return f
}

func userWithCredits(credits int64) *entity.User {
	return entity.HydrateUser("u-1", "Ada", "ada@example.com", "hash", credits, time.Time{}, time.Time{})
}

func TestService_GenerateImage(t *testing.T) {
	ctx := context.Background()
	enhanced := "High quality, detailed, photorealistic A cat"

	t.Run("Generates image and consumes one credit", func(t *testing.T) {
		f := newImageFixture(t)
		png := make([]byte, 2560)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(3), nil).Once()
		f.generator.EXPECT().Generate(ctx, enhanced).Return(png, nil).Once()
		f.credits.EXPECT().Consume(ctx, "u-1", int64(1)).Return(userWithCredits(2), nil).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeSuccess).Once()

		result, err := f.service.GenerateImage(ctx, "u-1", "a cat")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Equal(t, MsgImageGenerated, result.Message)
		assert.True(t, strings.HasPrefix(result.ResultImage, "data:image/png;base64,"))
		require.NotNil(t, result.Metadata)
		assert.Equal(t, int64(3), result.Metadata.ImageSize) // 2.5KB rounds up
		assert.Equal(t, "PNG", result.Metadata.Format)
		assert.Equal(t, int64(1), result.Metadata.CreditsUsed)
		assert.Equal(t, int64(2), result.Metadata.RemainingCredits)
	})

	t.Run("Prompt validation", func(t *testing.T) {
		f := newImageFixture(t)
		f.metrics.EXPECT().ImageGenerated(OutcomeRejected).Times(2)

		result, err := f.service.GenerateImage(ctx, "u-1", "   ")
		assert.ErrorIs(t, err, errs.ErrPromptRequired)
		assert.Equal(t, MsgPromptRequired, result.Message)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)

		result, err = f.service.GenerateImage(ctx, "u-1", strings.Repeat("a", 501))
		assert.ErrorIs(t, err, errs.ErrPromptTooLong)
		assert.Equal(t, MsgPromptTooLong, result.Message)
	})

	t.Run("User not found", func(t *testing.T) {
		f := newImageFixture(t)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(nil, errs.ErrUserNotFound).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeRejected).Once()

		result, _ := f.service.GenerateImage(ctx, "u-1", "a cat")

		assert.Equal(t, http.StatusNotFound, result.StatusCode)
		assert.Equal(t, MsgUserNotFound, result.Message)
	})

	t.Run("No credits never calls the provider", func(t *testing.T) {
		f := newImageFixture(t)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(0), nil).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeRejected).Once()

		result, err := f.service.GenerateImage(ctx, "u-1", "a cat")

		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, MsgNoCreditBalance, result.Message)
		require.NotNil(t, result.CreditBalance)
		assert.Equal(t, int64(0), *result.CreditBalance)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("Balance spent by a concurrent request", func(t *testing.T) {
		f := newImageFixture(t)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(1), nil).Once()
		f.generator.EXPECT().Generate(ctx, enhanced).Return([]byte{0x89, 0x50}, nil).Once()
		f.credits.EXPECT().Consume(ctx, "u-1", int64(1)).Return(nil, errs.NewInsufficientCreditsError("u-1", 1, 0)).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeRejected).Once()

		result, err := f.service.GenerateImage(ctx, "u-1", "a cat")

		assert.ErrorIs(t, err, errs.ErrInsufficientCredits)
		assert.Equal(t, MsgNoCreditBalance, result.Message)
		assert.Empty(t, result.ResultImage)
	})

	t.Run("Empty provider body", func(t *testing.T) {
		f := newImageFixture(t)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(1), nil).Once()
		f.generator.EXPECT().Generate(ctx, enhanced).Return([]byte{}, nil).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeFailed).Once()

		result, err := f.service.GenerateImage(ctx, "u-1", "a cat")

		assert.ErrorIs(t, err, errs.ErrEmptyImage)
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
		f.credits.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
	})

	providerCases := []struct {
		name       string
		err        error
		status     int
		message    string
		retryAfter int
	}{
		{name: "Unauthorized key", err: errs.NewProviderError("clipdrop", 401, "invalid api key"), status: 401, message: MsgInvalidAPIKey},
		{name: "Upstream rate limit", err: errs.NewProviderError("clipdrop", 429, "too many requests"), status: 429, message: MsgRateLimited, retryAfter: 60},
		{name: "Timeout", err: errs.ErrProviderTimeout, status: 504, message: MsgTimeout},
		{name: "Unreachable", err: errs.ErrProviderUnavailable, status: 503, message: MsgServiceUnavailable},
		{name: "Other upstream status", err: errs.NewProviderError("clipdrop", 402, "Not enough credits"), status: 402, message: "Not enough credits"},
		{name: "Unknown failure", err: errors.New("boom"), status: 500, message: MsgUnexpected},
	}

	for _, tc := range providerCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newImageFixture(t)
			f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(1), nil).Once()
			f.generator.EXPECT().Generate(ctx, enhanced).Return(nil, tc.err).Once()
			f.metrics.EXPECT().ImageGenerated(OutcomeFailed).Once()

			result, err := f.service.GenerateImage(ctx, "u-1", "a cat")

			require.Error(t, err)
			assert.Equal(t, tc.status, result.StatusCode)
			assert.Equal(t, tc.message, result.Message)
			assert.Equal(t, tc.retryAfter, result.RetryAfter)
		})
	}

	t.Run("Refused prompt carries suggestions", func(t *testing.T) {
		f := newImageFixture(t)
		f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(1), nil).Once()
		f.generator.EXPECT().Generate(ctx, mock.Anything).Return(nil, errs.NewProviderError("clipdrop", 422, "")).Once()
		f.metrics.EXPECT().ImageGenerated(OutcomeFailed).Once()

		result, _ := f.service.GenerateImage(ctx, "u-1", "family with pork loin")

		assert.Equal(t, http.StatusUnprocessableEntity, result.StatusCode)
		assert.Equal(t, MsgPromptRejected, result.Message)
		assert.Equal(t, "family with pork loin", result.OriginalPrompt)
		assert.Equal(t, "Family dinner with meat", result.Suggestions[0])
	})
}

func TestService_EnhancePrompt(t *testing.T) {
	f := newImageFixture(t)

	result, err := f.service.EnhancePrompt("a cat")

	require.NoError(t, err)
	assert.Equal(t, "a cat", result.Original)
	assert.Equal(t, "High quality, detailed, photorealistic A cat", result.Enhanced)
	assert.Len(t, result.Variations, 4)

	_, err = f.service.EnhancePrompt("")
	assert.ErrorIs(t, err, errs.ErrPromptRequired)
}

func TestService_GenerateImage_RepeatedUpstreamThrottling(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"too many requests"}`))
	}))
	defer srv.Close()

	f := newImageFixture(t)
	client := clipdrop.NewClient(clipdrop.Config{BaseURL: srv.URL, APIKey: "key-1"}, applogger.NewNoopLogger())
	service := NewService(f.users, f.credits, client, applogger.NewNoopLogger(), f.metrics)

	const attempts = 8
	f.users.EXPECT().GetCredits(ctx, "u-1").Return(userWithCredits(4), nil).Times(attempts)
	f.metrics.EXPECT().ImageGenerated(OutcomeFailed).Times(attempts)

	for i := 0; i < attempts; i++ {
		result, err := service.GenerateImage(ctx, "u-1", "a cat")

		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, result.StatusCode, "attempt %d", i+1)
		assert.Equal(t, MsgRateLimited, result.Message)
		assert.Equal(t, 60, result.RetryAfter)
	}
	f.credits.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
}
