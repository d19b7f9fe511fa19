package web

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"httpshare/internal/common"
	"httpshare/internal/server/auth"
	"httpshare/internal/server/history"
	"httpshare/internal/server/mirror"
)

// extractBoundary pulls the multipart boundary out of a Content-Type value.
// The media type check is deliberately loose: old upload scripts sent the
// misspelling "multpart/form-data", and the receiving side has always
// tolerated it. Anything carrying a form-data flavor and a boundary
// parameter is accepted.
func extractBoundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", common.ErrMissingBoundary
	}

	if !strings.Contains(mediaType, "form-data") && !strings.HasPrefix(mediaType, "multipart/") {
		return "", common.ErrMissingBoundary
	}

	boundary := params["boundary"]
	if boundary == "" {
		return "", common.ErrMissingBoundary
	}

	return boundary, nil
}

// firstFilePart advances the reader to the first part carrying a file name.
func firstFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, common.ErrNoFilePart
		}
		if err != nil {
			return nil, err
		}
		if part.FileName() != "" {
			return part, nil
		}
	}
}

// sanitizeName reduces a client-supplied file name to a safe base name.
func sanitizeName(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", common.ErrBadFileName
	}
	return base, nil
}

// handleUpload accepts one multipart upload and writes it into the upload
// directory under the client-supplied base name. A digest is computed while
// writing; it feeds the optional history record.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	track := trackFrom(ctx)
	if track != nil {
		track.SetLastURI(r.URL.Path)
		track.AddRequested(r.ContentLength)
	}

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if len(s.secret) > 0 {
		if err := s.authorize(r); err != nil {
			s.logger.Warn(ctx, "upload rejected", "remote", r.RemoteAddr, "error", err.Error())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	boundary, err := extractBoundary(r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	part, err := firstFilePart(multipart.NewReader(body, boundary))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, common.ErrUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name, err := sanitizeName(part.FileName())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dst := filepath.Join(s.uploadDir, name)
	size, sum, err := s.writeUpload(dst, part)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, common.ErrUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Error(ctx, "write upload", "name", name, "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	mediaType := ""
	if mt, err := mimetype.DetectFile(dst); err == nil {
		mediaType = mt.String()
	}

	s.logger.Info(ctx, "upload accepted",
		"name", name, "size", size, "checksum", sum, "media_type", mediaType, "remote", r.RemoteAddr)

	s.recordTransfer(r, name, size, sum, mediaType)
	s.mirrorUpload(r, dst, name, size)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK: received %s (%d bytes)\n", name, size)
}

// writeUpload streams the part to dst while hashing, returning the byte
// count and hex digest. The partial file is removed on error.
func (s *Server) writeUpload(dst string, part *multipart.Part) (int64, string, error) {
	f, err := os.Create(dst)
	if err != nil {
		return 0, "", err
	}

	h, err := s.algorithm.New()
	if err != nil {
		_ = f.Close()
		return 0, "", err
	}

	n, err := io.Copy(io.MultiWriter(f, h), part)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, "", err
	}

	return n, hex.EncodeToString(h.Sum(nil)), nil
}

func (s *Server) authorize(r *http.Request) error {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return common.ErrorUnauthorized
	}

	_, err := auth.VerifyToken(token, s.secret)
	return err
}

// recordTransfer writes the history row when a repository is configured.
// Failures are logged, never surfaced to the uploader.
func (s *Server) recordTransfer(r *http.Request, name string, size int64, sum, mediaType string) {
	if s.history == nil {
		return
	}

	t := &history.Transfer{
		ID:         uuid.NewString(),
		FileName:   name,
		Size:       size,
		Checksum:   sum,
		MediaType:  mediaType,
		RemoteAddr: r.RemoteAddr,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.history.Create(r.Context(), t); err != nil {
		s.logger.Error(r.Context(), "record transfer", "name", name, "error", err.Error())
	}
}

// mirrorUpload copies the stored file to object storage when a mirror is
// configured. Best-effort only.
func (s *Server) mirrorUpload(r *http.Request, dst, name string, size int64) {
	if s.mirror == nil {
		return
	}

	f, err := os.Open(dst)
	if err != nil {
		s.logger.Error(r.Context(), "mirror open", "name", name, "error", err.Error())
		return
	}
	defer f.Close()

	key := mirror.StorageKey(time.Now().UTC(), name)
	if err := s.mirror.Put(r.Context(), key, f, size); err != nil {
		s.logger.Error(r.Context(), "mirror put", "name", name, "error", err.Error())
	}
}
