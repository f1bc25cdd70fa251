package wsfeed

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompressPassesPlainFramesThrough(t *testing.T) {
	out, err := decompress([]byte("Ping"))
	require.NoError(t, err)
	assert.Equal(t, "Ping", string(out))
}

func TestDecompressGunzipsFrames(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(`{"data":{"c":"0.45"}}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := decompress(buf.Bytes())
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"c":"0.45"}}`, string(out))
}

func TestWSURLWithListenKeyAppendsQueryParam(t *testing.T) {
	full := wsURLWithListenKey("wss://open-api-ws.bingx.com/market", "abc123")
	assert.Contains(t, full, "listenKey=abc123")
}
