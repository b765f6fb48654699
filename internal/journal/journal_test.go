package journal

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/engine"
)

func TestReaderParsesGeneratedLines(t *testing.T) {
	lines := Generate("ETH/USDT", 20, 1)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, l := range lines {
		require.NoError(t, w.WriteLine(l))
	}

	r := NewReader(&buf)
	count := 0
	for {
		req, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch req.(type) {
		case engine.CreateRequest, engine.CancelRequest:
			count++
		default:
			t.Fatalf("unexpected request type %T", req)
		}
	}
	assert.Equal(t, 20, count)
}

func TestReaderSkipsBlankLines(t *testing.T) {
	r := NewReader(bytes.NewBufferString("\n\n{\"order_request\":\"CANCEL\",\"order_id\":1}\n"))
	req, err := r.Next()
	require.NoError(t, err)
	_, ok := req.(engine.CancelRequest)
	assert.True(t, ok)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate("ETH/USDT", 50, 42)
	b := Generate("ETH/USDT", 50, 42)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, string(a[i]), string(b[i]))
	}
}
