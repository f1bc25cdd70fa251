package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestParsesJSONEnvelope(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-BX-APIKEY"))
		assert.Contains(t, r.URL.RawQuery, "signature=")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"msg":"","data":{"ok":true}}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "test-key", "test-secret")
	raw, status := client.Request(context.Background(), "GET", "/test", map[string]string{"symbol": "ADA-USDT"})

	require.Equal(t, "OK", status)
	assert.JSONEq(t, `{"code":0,"msg":"","data":{"ok":true}}`, string(raw))
}

func TestRequestUnwrapsTextPlainJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`"{\"code\":0,\"data\":null}"`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "k", "s")
	raw, status := client.Request(context.Background(), "GET", "/test", nil)

	require.Equal(t, "OK", status)
	assert.JSONEq(t, `{"code":0,"data":null}`, string(raw))
}

func TestRequestNon200ReturnsStatusString(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "k", "s")
	_, status := client.Request(context.Background(), "GET", "/test", nil)
	assert.Contains(t, status, "status 500")
}

func TestRequestUnexpectedContentType(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "k", "s")
	_, status := client.Request(context.Background(), "GET", "/test", nil)
	assert.Contains(t, status, "unexpected content-type")
}

func TestPlaceOrderReportsInsufficientFunds(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":100202,"msg":"insufficient balance","data":null}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "k", "s")
	result, code, status := client.PlaceOrder(context.Background(), "ADA", "BUY", 10)

	assert.Nil(t, result)
	assert.Equal(t, int64(100202), code)
	assert.Contains(t, status, "insufficient balance")
}

func TestGetCandlestickDataDecodesCloses(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"msg":"","data":[{"close":"0.45"},{"close":"0.46"}]}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, "k", "s")
	klines, status := client.GetCandlestickData(context.Background(), "ADA", "1m", 2)

	require.Equal(t, "OK", status)
	require.Len(t, klines, 2)
	assert.Equal(t, 0.45, klines[0].Close)
	assert.Equal(t, 0.46, klines[1].Close)
}
