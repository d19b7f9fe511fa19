// Package rawhttp hand-builds the one HTTP/1.0 multipart upload request the
// checker sends and reads back the first line of the server's reply. It is
// deliberately not a general HTTP client: one request, one response, one
// TCP connection, no redirects, no retries.
package rawhttp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const crlf = "\r\n"

// Upload describes the single form-data file part the request carries.
type Upload struct {
	// Host is the value of the Host header.
	Host string
	// Path is the request target, e.g. "/upload".
	Path string
	// Boundary is the multipart boundary token (environment supplied).
	Boundary string
	// Field is the form field name.
	Field string
	// FileName is the client-side base name reported in the part header.
	FileName string
	// FileSize is the exact byte length of the file; Content-Length is
	// computed from it.
	FileSize int64
	// AuthToken, when set, is forwarded as a bearer token.
	AuthToken string
}

// partHeader renders the opening boundary line and the part headers.
func (u *Upload) partHeader() string {
	var b strings.Builder
	b.WriteString("--" + u.Boundary + crlf)
	b.WriteString(fmt.Sprintf("Content-Disposition: form-data; name=%q; filename=%q%s", u.Field, u.FileName, crlf))
	b.WriteString("Content-Type: application/octet-stream" + crlf)
	b.WriteString(crlf)
	return b.String()
}

// trailer renders the closing boundary marker.
func (u *Upload) trailer() string {
	return crlf + "--" + u.Boundary + "--" + crlf
}

// ContentLength returns the total multipart body size.
func (u *Upload) ContentLength() int64 {
	return int64(len(u.partHeader())) + u.FileSize + int64(len(u.trailer()))
}

// Preamble renders the request line and headers, up to and including the
// blank line separating headers from the body.
func (u *Upload) Preamble() string {
	var b strings.Builder
	b.WriteString("POST " + u.Path + " HTTP/1.0" + crlf)
	b.WriteString("Host: " + u.Host + crlf)
	b.WriteString("Connection: close" + crlf)
	b.WriteString("Content-Type: multipart/form-data; boundary=" + u.Boundary + crlf)
	b.WriteString(fmt.Sprintf("Content-Length: %d%s", u.ContentLength(), crlf))
	if u.AuthToken != "" {
		b.WriteString("Authorization: Bearer " + u.AuthToken + crlf)
	}
	b.WriteString(crlf)
	return b.String()
}

// WriteRequest streams the whole request to w: preamble, part header, the
// file bytes from src, and the closing boundary.
func WriteRequest(w io.Writer, u *Upload, src io.Reader) error {
	if u.Boundary == "" {
		return fmt.Errorf("rawhttp: empty boundary")
	}

	if _, err := io.WriteString(w, u.Preamble()); err != nil {
		return fmt.Errorf("write preamble: %w", err)
	}
	if _, err := io.WriteString(w, u.partHeader()); err != nil {
		return fmt.Errorf("write part header: %w", err)
	}

	n, err := io.Copy(w, src)
	if err != nil {
		return fmt.Errorf("write file bytes: %w", err)
	}
	if n != u.FileSize {
		return fmt.Errorf("short file body: wrote %d of %d bytes", n, u.FileSize)
	}

	if _, err := io.WriteString(w, u.trailer()); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}

// FirstLine reads and returns the first line of the server's reply with the
// line terminator stripped. Nothing beyond the first line is consumed or
// parsed.
func FirstLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return strings.TrimRight(line, crlf), nil
}
