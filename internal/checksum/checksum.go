// Package checksum computes hex-encoded file digests used to compare the
// bytes of an uploaded file against the copy the server wrote out. MD5 is
// the default; it is an integrity check, not a security boundary.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Algorithm names a supported digest.
type Algorithm string

const (
	MD5     Algorithm = "md5"
	SHA256  Algorithm = "sha256"
	BLAKE2b Algorithm = "blake2b"
)

// Default is used when no algorithm is configured.
const Default = MD5

// New returns a fresh hash for the algorithm.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unknown checksum algorithm: %q", a)
	}
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	_, err := a.New()
	return err == nil
}

// Sum reads r to EOF and returns the hex digest.
func Sum(a Algorithm, r io.Reader) (string, error) {
	h, err := a.New()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File returns the hex digest of the file at path.
func File(a Algorithm, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return Sum(a, f)
}
