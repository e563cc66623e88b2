package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_UTF8Text(t *testing.T) {
	c, err := Classify([]byte("a=1\na=2\na=3\n"))
	require.NoError(t, err)
	require.False(t, c.Binary)
	require.False(t, c.Latin1)
	require.Equal(t, "a=1\na=2\na=3\n", c.Text)
}

func TestClassify_Binary(t *testing.T) {
	// A PNG-like prefix: lots of NUL/control bytes in the first 4096.
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 200)...)
	c, err := Classify(data)
	require.NoError(t, err)
	require.True(t, c.Binary)
}

func TestClassify_Latin1Fallback(t *testing.T) {
	// 0xE9 alone is not valid UTF-8 but is a valid Latin-1 byte ('é').
	data := []byte("caf\xe9\n")
	c, err := Classify(data)
	require.NoError(t, err)
	require.False(t, c.Binary)
	require.True(t, c.Latin1)
	require.Equal(t, rune(0xe9), []rune(c.Text)[3])
}

func TestClassify_MostlyASCIIWithFewControlBytesStaysText(t *testing.T) {
	data := []byte(strings.Repeat("line of normal log text\n", 100) + "\x01")
	c, err := Classify(data)
	require.NoError(t, err)
	require.False(t, c.Binary)
}

func TestEncodeLatin1_RoundTrip(t *testing.T) {
	original := []byte("caf\xe9\n")
	c, err := Classify(original)
	require.NoError(t, err)
	require.True(t, c.Latin1)

	restored, err := EncodeLatin1(c.Text)
	require.NoError(t, err)
	require.Equal(t, original, restored)
}

func TestEncodeLatin1_OutOfRangeFails(t *testing.T) {
	_, err := EncodeLatin1("ሴ")
	require.Error(t, err)
}
