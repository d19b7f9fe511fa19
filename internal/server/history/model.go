// Package history persists a record of every accepted upload when a
// Postgres DSN is configured. It is optional; the server runs fine without
// it.
package history

import "time"

// Transfer describes one accepted upload.
type Transfer struct {
	// ID is a server-assigned UUID.
	ID string
	// FileName is the sanitized base name the file was stored under.
	FileName string
	// Size is the number of payload bytes written.
	Size int64
	// Checksum is the hex digest computed while writing the file.
	Checksum string
	// MediaType is the sniffed content type of the payload.
	MediaType string
	// RemoteAddr is the peer that sent the upload.
	RemoteAddr string
	// ReceivedAt is when the upload completed.
	ReceivedAt time.Time
}
