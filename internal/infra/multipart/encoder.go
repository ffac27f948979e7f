// Package multipart builds multipart/form-data request bodies by hand, the
// way the Bot API expects them: scalar envelope fields first, then binary
// attachments, each in its own boundary-delimited part.
package multipart

import (
	"bytes"
	"fmt"
	"math/rand"
	"mime"
	"path/filepath"
)

const (
	boundaryLength   = 64
	boundaryAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	fallbackContentType = "application/octet-stream"
)

// Encode serializes the envelope and attachments into a single body and
// returns it together with the freshly generated boundary.
//
// Field names, values and filenames are written without escaping, and the
// boundary is not checked against the content for collisions: callers must
// not pass values that contain the boundary token or multipart structure.
func Encode(env *Envelope, attachments []Attachment) ([]byte, string) {
	boundary := newBoundary()
	return encodeWith(boundary, env, attachments), boundary
}

// encodeWith is deterministic for a fixed boundary and identical inputs.
func encodeWith(boundary string, env *Envelope, attachments []Attachment) []byte {
	var body bytes.Buffer
	appendCRLF := false

	if env != nil {
		for _, f := range env.fields {
			if appendCRLF {
				body.WriteString("\r\n")
			}
			appendCRLF = true

			fmt.Fprintf(&body, "--%s\r\n", boundary)
			fmt.Fprintf(&body, "Content-Disposition: form-data; name=\"%s\"\r\n", f.name)
			body.WriteString("\r\n")
			body.WriteString(f.value.WireString())
		}
	}

	for _, a := range attachments {
		if appendCRLF {
			body.WriteString("\r\n")
		}
		appendCRLF = true

		fmt.Fprintf(&body, "--%s\r\n", boundary)
		fmt.Fprintf(&body, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"\r\n", a.Field, a.Filename)
		fmt.Fprintf(&body, "Content-Type: %s\r\n", contentTypeFor(a.Filename))
		fmt.Fprintf(&body, "Content-Length: %d\r\n", len(a.Data))
		body.WriteString("\r\n")
		body.Write(a.Data)
	}

	fmt.Fprintf(&body, "\r\n--%s--\r\n\r\n", boundary)

	return body.Bytes()
}

// contentTypeFor guesses the declared media type from the filename
// extension, falling back to a generic binary type.
func contentTypeFor(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return fallbackContentType
}

// newBoundary returns a fresh 64-character token drawn from uppercase ASCII
// letters and digits.
func newBoundary() string {
	b := make([]byte, boundaryLength)
	for i := range b {
		b[i] = boundaryAlphabet[rand.Intn(len(boundaryAlphabet))]
	}
	return string(b)
}
