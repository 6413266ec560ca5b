package storage

import (
	"blueghost/internal/structures"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompression_Roundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := []byte(`{"alice":[{"prompt":"fog","style":"Horror","story":"..."}]}`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_LargeData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := bytes.Repeat([]byte("the ghost whispered "), 50_000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original)/2)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_DecompressInvalidData(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("not valid zstd data"))
	assert.Error(t, err)
}

func TestPlainCompression_Identity(t *testing.T) {
	c := PlainCompression{}
	data := []byte(`{"bob":[]}`)

	out, err := c.Compress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	out, err = c.Decompress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestNewCompressor(t *testing.T) {
	tests := []struct {
		name        string
		compression string
		want        interface{}
		wantErr     bool
	}{
		{"default", "", PlainCompression{}, false},
		{"none", CompressionNone, PlainCompression{}, false},
		{"zstd", CompressionZstd, &ZstdCompression{}, false},
		{"unknown", "lz4", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &structures.Config{Persistence: structures.Persistence{Compression: tt.compression}}
			c, err := NewCompressor(conf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, c)
			c.Close()
		})
	}
}
