package avalanche_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/provider"
)

func TestFetchBulletin(t *testing.T) {
	var gotRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(fullBulletin))
	}))
	t.Cleanup(server.Close)

	client := avalanche.NewClient(avalanche.ClientConfig{
		APIKey:   "secret-key",
		MassifID: 3,
		BaseURL:  server.URL,
	})

	bulletin, err := client.FetchBulletin(context.Background())
	require.NoError(t, err)

	assert.True(t, bulletin.HasData)
	assert.Equal(t, 3, bulletin.MassifID)

	require.NotNil(t, gotRequest)
	assert.Equal(t, "secret-key", gotRequest.Header.Get("apikey"))
	assert.Equal(t, "/massif/BRA", gotRequest.URL.Path)
	assert.Equal(t, "3", gotRequest.URL.Query().Get("id-massif"))
	assert.Equal(t, "xml", gotRequest.URL.Query().Get("format"))
}

func TestFetchBulletin_OutOfSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<root MASSIF="CHABLAIS"/>`))
	}))
	t.Cleanup(server.Close)

	client := avalanche.NewClient(avalanche.ClientConfig{
		APIKey:   "secret-key",
		MassifID: 1,
		BaseURL:  server.URL,
	})

	bulletin, err := client.FetchBulletin(context.Background())
	require.NoError(t, err)
	assert.False(t, bulletin.HasData)
}

func TestFetchBulletin_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := avalanche.NewClient(avalanche.ClientConfig{
		APIKey:   "expired-key",
		MassifID: 1,
		BaseURL:  server.URL,
	})

	_, err := client.FetchBulletin(context.Background())
	require.Error(t, err)

	kind, ok := provider.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, provider.KindAuth, kind)
}
