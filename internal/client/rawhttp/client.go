package rawhttp

import (
	"context"
	"fmt"
	"io"
	"net"
)

// Do opens a plain TCP connection to addr, streams the upload request, and
// returns the first line of the reply. The connection is closed after the
// single request/response cycle. Any deadline on ctx bounds the whole
// exchange.
func Do(ctx context.Context, addr string, u *Upload, src io.Reader) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", fmt.Errorf("set deadline: %w", err)
		}
	}

	if err := WriteRequest(conn, u, src); err != nil {
		return "", err
	}

	return FirstLine(conn)
}
