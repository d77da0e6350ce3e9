package mailer

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	c := NewClient(Config{Username: "watcher@example.com"}, nil)

	msg := c.buildMessage("dest@example.com", "【警告】保有株に悪材料検知 (2件) - 08/25 12:05", "本文です")

	assert.True(t, strings.HasPrefix(msg, "From: watcher@example.com\r\n"))
	assert.Contains(t, msg, "To: dest@example.com\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64\r\n")

	// Subject must be RFC 2047 encoded, never raw Japanese.
	assert.Contains(t, msg, "Subject: =?UTF-8?")
	assert.NotContains(t, msg, "Subject: 【警告】")

	// The body after the blank line decodes back to the original text.
	_, rawBody, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(rawBody, "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, "本文です", string(decoded))
}

func TestEncodeBase64WithLineBreaks(t *testing.T) {
	long := strings.Repeat("あいうえお", 40)

	encoded := encodeBase64WithLineBreaks([]byte(long))

	for _, line := range strings.Split(strings.TrimSuffix(encoded, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(encoded, "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, long, string(decoded))
}
