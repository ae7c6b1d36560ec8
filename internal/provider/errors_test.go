package provider_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/provider"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantKind  provider.Kind
		retryable bool
	}{
		{http.StatusUnauthorized, provider.KindAuth, false},
		{http.StatusForbidden, provider.KindAuth, false},
		{http.StatusNotFound, provider.KindNotFound, false},
		{http.StatusInternalServerError, provider.KindNetwork, true},
		{http.StatusBadGateway, provider.KindNetwork, true},
		{http.StatusTooManyRequests, provider.KindNetwork, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := provider.ClassifyStatus("test-source", tt.status)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.retryable, err.Retryable())
		})
	}
}

func TestKindOf_UnwrapsChain(t *testing.T) {
	inner := provider.NewParseError("openmeteo", errors.New("bad json"))
	wrapped := fmt.Errorf("daily forecast: %w", inner)

	kind, ok := provider.KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, provider.KindParse, kind)
}

func TestKindOf_UnclassifiedError(t *testing.T) {
	_, ok := provider.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, provider.IsRetryable(provider.NewNetworkError("s", errors.New("timeout"))))
	assert.False(t, provider.IsRetryable(provider.NewParseError("s", errors.New("bad json"))))
	assert.False(t, provider.IsRetryable(provider.ClassifyStatus("s", http.StatusUnauthorized)))
	assert.False(t, provider.IsRetryable(provider.ClassifyStatus("s", http.StatusNotFound)))

	// Unclassified errors keep the retry budget.
	assert.True(t, provider.IsRetryable(errors.New("plain transport error")))
}

func TestError_Message(t *testing.T) {
	err := &provider.Error{
		Kind:   provider.KindAuth,
		Source: "meteofrance-bra",
		Status: http.StatusForbidden,
	}
	assert.Equal(t, "meteofrance-bra: auth error (status 403)", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := provider.NewNetworkError("openmeteo", cause)
	assert.ErrorIs(t, err, cause)
}
