package http

import (
	"math/rand"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentEscape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abcXYZ019", "abcXYZ019"},
		{"-._*", "-._*"},
		{"ios developer", "ios+developer"},
		{"a+b", "a%2Bb"},
		{"a&b=c", "a%26b%3Dc"},
		{"50% off!", "50%25+off%21"},
		{"~/path?", "%7E%2Fpath%3F"},
		{"café", "caf%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentEscape(tt.input))
		})
	}
}

func TestPercentEscape_RoundTripASCII(t *testing.T) {
	var all strings.Builder
	for c := 0; c < 128; c++ {
		all.WriteByte(byte(c))
	}

	inputs := []string{all.String()}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		b := make([]byte, rng.Intn(40))
		for j := range b {
			b[j] = byte(rng.Intn(128))
		}
		inputs = append(inputs, string(b))
	}

	for _, input := range inputs {
		escaped := PercentEscape(input)
		for i := 0; i < len(escaped); i++ {
			c := escaped[i]
			require.Truef(t, isUnreserved(c) || c == '+' || c == '%' || strings.IndexByte(upperhex, c) >= 0,
				"unexpected byte %q in %q", c, escaped)
		}

		decoded, err := url.QueryUnescape(escaped)
		require.NoError(t, err)
		require.Equal(t, input, decoded)
	}
}

func TestEncodeForm_RoundTrip(t *testing.T) {
	tests := []Parameters{
		{},
		{"description": "ios developer"},
		{"description": "ios developer", "full_time": "true", "location": "New York, NY"},
		{"q": "a=b&c=d", "plus": "1+1", "star": "*"},
		{"a&b": "1", "full time": "x", "k=v": "="},
	}

	for _, params := range tests {
		body := string(encodeForm(params))

		got := make(map[string]string)
		if body != "" {
			for _, pair := range strings.Split(body, "&") {
				key, value, found := strings.Cut(pair, "=")
				require.True(t, found, "pair without '=': %s", pair)
				unescapedKey, err := url.QueryUnescape(key)
				require.NoError(t, err)
				unescaped, err := url.QueryUnescape(value)
				require.NoError(t, err)
				got[unescapedKey] = unescaped
			}
		}

		if diff := cmp.Diff(map[string]string(params), got); diff != "" {
			t.Errorf("form round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeBody(t *testing.T) {
	params := Parameters{"full_time": "true", "description": "ios developer"}

	body, err := encodeBody(EncodingJSON, params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"ios developer","full_time":"true"}`, string(body))

	body, err = encodeBody(EncodingHTTPBody, params)
	require.NoError(t, err)
	assert.Equal(t, "description=ios+developer&full_time=true", string(body))

	body, err = encodeBody(EncodingQueryString, params)
	require.NoError(t, err)
	assert.Nil(t, body)

	body, err = encodeBody(EncodingJSON, nil)
	require.NoError(t, err)
	assert.Nil(t, body)
}

func TestEncodeQuery(t *testing.T) {
	assert.Equal(t, "description=ios%20developer&full_time=true",
		encodeQuery(Parameters{"full_time": "true", "description": "ios developer"}))
	assert.Equal(t, "", encodeQuery(Parameters{}))
}

func TestEncodeBody_InvalidUTF8(t *testing.T) {
	tests := []Parameters{
		{"name": "a\xffb"},
		{"na\xffme": "ok"},
	}

	for _, params := range tests {
		body, err := encodeBody(EncodingJSON, params)
		assert.Nil(t, body)
		assert.ErrorIs(t, err, ErrSerializationError)
	}

	body, err := encodeBody(EncodingJSON, Parameters{"city": "São Paulo"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"São Paulo"}`, string(body))
}

func TestEncodeForm_EscapesKeys(t *testing.T) {
	assert.Equal(t, "a%26b=1&full+time=x", string(encodeForm(Parameters{"a&b": "1", "full time": "x"})))
	assert.Equal(t, "full_time=true", string(encodeForm(Parameters{"full_time": "true"})))
}
