package entropy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.endpoint = srv.URL
	c.client = srv.Client()
	return c
}

func TestNewClientWithoutKey(t *testing.T) {
	c := NewClient("")
	assert.Nil(t, c)
	assert.False(t, c.Enabled())
	assert.Positive(t, c.Seed())
	assert.Positive(t, Seed(c))
}

func TestCryptoSeedPositive(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Positive(t, CryptoSeed())
	}
}

func TestSeedFromPool(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req struct {
			Method string `json:"method"`
			Params struct {
				APIKey string `json:"apiKey"`
				N      int    `json:"n"`
			} `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "generateIntegers", req.Method)
		assert.Equal(t, "test-key", req.Params.APIKey)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","result":{"random":{"data":[0,11,22]}},"id":1}`))
	})

	assert.True(t, c.Enabled())
	assert.Equal(t, int64(11), c.Seed(), "zero values are skipped")
	assert.Equal(t, int64(22), Seed(c))
	assert.Equal(t, int32(1), calls.Load())

	c.Seed()
	assert.Equal(t, int32(2), calls.Load(), "empty pool triggers a refill")
}

func TestSeedFallsBackOnAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":401,"message":"bad key"},"id":1}`))
	})
	assert.Positive(t, c.Seed())
}

func TestSeedFallsBackOnGarbage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	assert.Positive(t, c.Seed())
}
