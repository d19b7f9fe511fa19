// Package web implements the HTTP surface of httpshare: file serving from
// the shared directory, directory listings, and the multipart upload
// endpoint. Every accepted connection is wrapped for byte accounting so the
// terminal monitor can show live transfer progress.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"httpshare/internal/checksum"
	"httpshare/internal/common"
	"httpshare/internal/logging"
	"httpshare/internal/server/history"
	"httpshare/internal/server/mirror"
	"httpshare/internal/server/stats"
)

// Params collects the dependencies of a Server. History and Mirror may be
// nil; the corresponding features are then disabled.
type Params struct {
	Addr      string
	Dir       string
	UploadDir string
	MaxUpload int64
	// AuthSecret enables the bearer-token gate on uploads when non-empty.
	AuthSecret string
	Algorithm  checksum.Algorithm

	Logger  logging.Logger
	Stats   *stats.Set
	History history.Repository
	Mirror  *mirror.S3Mirror
}

type Server struct {
	addr      string
	dir       string
	uploadDir string
	maxUpload int64
	secret    []byte
	algorithm checksum.Algorithm

	logger  logging.Logger
	set     *stats.Set
	history history.Repository
	mirror  *mirror.S3Mirror

	boundAddr atomic.Value
}

// BoundAddr returns the listener address once Run has bound it, nil before.
func (s *Server) BoundAddr() net.Addr {
	a, _ := s.boundAddr.Load().(net.Addr)
	return a
}

func NewServer(p Params) *Server {
	alg := p.Algorithm
	if alg == "" {
		alg = checksum.Default
	}

	var secret []byte
	if p.AuthSecret != "" {
		secret = []byte(p.AuthSecret)
	}

	return &Server{
		addr:      p.Addr,
		dir:       p.Dir,
		uploadDir: p.UploadDir,
		maxUpload: p.MaxUpload,
		secret:    secret,
		algorithm: alg,
		logger:    p.Logger.With("module", "web"),
		set:       p.Stats,
		history:   p.History,
		mirror:    p.Mirror,
	}
}

// routes builds the request mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(common.UploadPath, s.handleUpload)
	if s.history != nil {
		mux.HandleFunc("/history", s.handleHistory)
	}
	mux.HandleFunc("/", s.handleFiles)
	return mux
}

type connKey struct{}

// connContext stashes the per-connection tracker so handlers can attribute
// requests to the connection they arrived on.
func (s *Server) connContext(ctx context.Context, c net.Conn) context.Context {
	if tc, ok := c.(*trackedConn); ok {
		return context.WithValue(ctx, connKey{}, tc.track)
	}
	return ctx
}

// trackFrom returns the connection tracker for a request, or nil when the
// request did not arrive through a tracked listener (tests).
func trackFrom(ctx context.Context) *stats.Connection {
	track, _ := ctx.Value(connKey{}).(*stats.Connection)
	return track
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.boundAddr.Store(ln.Addr())

	srv := &http.Server{
		Handler:     s.routes(),
		ConnContext: s.connContext,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr, "dir", s.dir)

	if err := srv.Serve(newTrackedListener(ln, s.set)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
