package multipart

import (
	"bytes"
	"io"
	stdmultipart "mime/multipart"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodedPart struct {
	name     string
	filename string
	data     []byte
	header   map[string]string
}

// decodeBody re-parses the encoder output with the stdlib multipart reader,
// which acts as the reference parser in these tests.
func decodeBody(t *testing.T, body []byte, boundary string) []decodedPart {
	t.Helper()

	var parts []decodedPart
	reader := stdmultipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(part)
		require.NoError(t, err)

		header := make(map[string]string)
		for key := range part.Header {
			header[key] = part.Header.Get(key)
		}
		parts = append(parts, decodedPart{
			name:     part.FormName(),
			filename: part.FileName(),
			data:     data,
			header:   header,
		})
	}
	return parts
}

func TestEncodeRoundTrip(t *testing.T) {
	env := NewEnvelope()
	env.SetInt("chat_id", 42)
	env.SetBool("disable_notifications", true)
	env.Set("text", "hello, world")

	photo := []byte{0xff, 0xd8, 0xff, 0x00, '\r', '\n', 0x01, 0x02}
	blob := []byte("plain attachment contents")
	attachments := []Attachment{
		{Field: "photo", Filename: "cat.jpg", Data: photo},
		{Field: "extra", Filename: "notes.bin", Data: blob},
	}

	body, boundary := Encode(env, attachments)
	parts := decodeBody(t, body, boundary)
	require.Len(t, parts, 5)

	assert.Equal(t, "chat_id", parts[0].name)
	assert.Equal(t, "42", string(parts[0].data))
	assert.Equal(t, "disable_notifications", parts[1].name)
	assert.Equal(t, "true", string(parts[1].data))
	assert.Equal(t, "text", parts[2].name)
	assert.Equal(t, "hello, world", string(parts[2].data))

	assert.Equal(t, "photo", parts[3].name)
	assert.Equal(t, "cat.jpg", parts[3].filename)
	assert.Equal(t, photo, parts[3].data)
	assert.Equal(t, "image/jpeg", parts[3].header["Content-Type"])
	assert.Equal(t, strconv.Itoa(len(photo)), parts[3].header["Content-Length"])

	assert.Equal(t, "extra", parts[4].name)
	assert.Equal(t, "notes.bin", parts[4].filename)
	assert.Equal(t, blob, parts[4].data)
	assert.Equal(t, "application/octet-stream", parts[4].header["Content-Type"])
}

func TestEncodeFieldsOnly(t *testing.T) {
	env := NewEnvelope()
	env.Set("text", "no attachments here")

	body, boundary := Encode(env, nil)
	parts := decodeBody(t, body, boundary)
	require.Len(t, parts, 1)
	assert.Equal(t, "text", parts[0].name)
	assert.Equal(t, "no attachments here", string(parts[0].data))
}

func TestEncodeBinarySafety(t *testing.T) {
	// Attachment bytes that look like multipart structure must survive
	// verbatim.
	data := []byte("\r\n--not-a-boundary--\r\n\x00\x01\xfe\xff")

	body, boundary := Encode(NewEnvelope(), []Attachment{
		{Field: "video", Filename: "clip.mp4", Data: data},
	})
	parts := decodeBody(t, body, boundary)
	require.Len(t, parts, 1)
	assert.Equal(t, data, parts[0].data)
	assert.Equal(t, "video/mp4", parts[0].header["Content-Type"])
}

func TestEnvelopeOrderAndOverwrite(t *testing.T) {
	env := NewEnvelope()
	env.Set("first", "1")
	env.Set("second", "2")
	env.Set("first", "overwritten")
	require.Equal(t, 2, env.Len())

	body, boundary := Encode(env, nil)
	parts := decodeBody(t, body, boundary)
	require.Len(t, parts, 2)
	assert.Equal(t, "first", parts[0].name)
	assert.Equal(t, "overwritten", string(parts[0].data))
	assert.Equal(t, "second", parts[1].name)
}

func TestBoundaryFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		boundary := newBoundary()
		require.Len(t, boundary, 64)
		for _, c := range boundary {
			ok := (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			require.True(t, ok, "unexpected boundary character %q", c)
		}
		seen[boundary] = true
	}
	assert.Greater(t, len(seen), 1, "boundaries should not repeat")
}

func TestEncodeDeterministicForFixedBoundary(t *testing.T) {
	env := NewEnvelope()
	env.SetInt("chat_id", 7)
	env.Set("caption", "same every time")
	attachments := []Attachment{{Field: "photo", Filename: "p.jpg", Data: []byte{1, 2, 3}}}

	first := encodeWith("FIXEDBOUNDARY", env, attachments)
	second := encodeWith("FIXEDBOUNDARY", env, attachments)
	assert.Equal(t, first, second)
}

func TestValueWireString(t *testing.T) {
	assert.Equal(t, "plain", StringValue("plain").WireString())
	assert.Equal(t, "-12", IntValue(-12).WireString())
	assert.Equal(t, "true", BoolValue(true).WireString())
	assert.Equal(t, "false", BoolValue(false).WireString())
}
