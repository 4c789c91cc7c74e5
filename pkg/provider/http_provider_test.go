package provider_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poktfn/pocket-go/pkg/provider"
)

func TestHTTPProvider(t *testing.T) {
	raw := &provider.RawTransaction{
		Address: "b50a6e20d3733fb89631ae32385b3c85c533c560",
		Tx:      []byte{0x0a, 0x0b},
	}

	t.Run("posts the expected request shape", func(t *testing.T) {
		var gotPath, gotRequestID string
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotRequestID = r.Header.Get("X-Request-ID")
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotBody))
			_ = json.NewEncoder(w).Encode(provider.TxResponse{TxHash: "ABC123"})
		}))
		defer srv.Close()

		p, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{BaseURL: srv.URL})
		require.NoError(t, err)

		resp, err := p.SendTransaction(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, "ABC123", resp.TxHash)
		assert.Equal(t, "/v1/client/rawtx", gotPath)
		assert.NotEmpty(t, gotRequestID)
		assert.Equal(t, raw.Address, gotBody["address"])
		assert.Equal(t, "0a0b", gotBody["raw_hex_bytes"])
	})

	t.Run("propagates node rejections verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":4,"message":"signature verification failed"}`))
		}))
		defer srv.Close()

		p, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = p.SendTransaction(context.Background(), raw)
		require.Error(t, err)
		var nodeErr *provider.NodeError
		require.ErrorAs(t, err, &nodeErr)
		assert.Equal(t, http.StatusBadRequest, nodeErr.StatusCode)
		assert.Contains(t, nodeErr.Body, "signature verification failed")
	})

	t.Run("records metrics", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(provider.TxResponse{TxHash: "ABC123"})
		}))
		defer srv.Close()

		registry := prometheus.NewRegistry()
		p, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{
			BaseURL: srv.URL,
			Metrics: provider.NewMetricsWithRegistry(registry),
		})
		require.NoError(t, err)

		_, err = p.SendTransaction(context.Background(), raw)
		require.NoError(t, err)

		families, err := registry.Gather()
		require.NoError(t, err)
		names := make(map[string]bool)
		for _, f := range families {
			names[f.GetName()] = true
		}
		assert.True(t, names["pocket_broadcasts_total"])
		assert.True(t, names["pocket_broadcasts_success_total"])
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		p, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{BaseURL: srv.URL})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = p.SendTransaction(ctx, raw)
		assert.Error(t, err)
	})

	t.Run("requires a base URL", func(t *testing.T) {
		_, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{})
		assert.Error(t, err)
	})
}
