package web

import (
	"html/template"
	"net/http"
	"time"
)

// historyLimit is how many transfers the /history page shows.
const historyLimit = 50

var historyTmpl = template.Must(template.New("history").Parse(`<!DOCTYPE html>
<html>
<head><title>Recent transfers</title></head>
<body>
<h1>Recent transfers</h1>
<table>
<tr><th>Received</th><th>File</th><th>Size</th><th>Checksum</th><th>Type</th><th>From</th></tr>
{{- range .}}
<tr><td>{{.Received}}</td><td>{{.FileName}}</td><td>{{.Size}}</td><td>{{.Checksum}}</td><td>{{.MediaType}}</td><td>{{.RemoteAddr}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

type historyRow struct {
	Received   string
	FileName   string
	Size       int64
	Checksum   string
	MediaType  string
	RemoteAddr string
}

// handleHistory renders the most recent accepted uploads. The route is only
// registered when a history repository is configured.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if track := trackFrom(r.Context()); track != nil {
		track.SetLastURI(r.URL.Path)
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	transfers, err := s.history.SelectRecent(r.Context(), historyLimit)
	if err != nil {
		s.logger.Error(r.Context(), "select transfers", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]historyRow, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, historyRow{
			Received:   t.ReceivedAt.Format(time.RFC3339),
			FileName:   t.FileName,
			Size:       t.Size,
			Checksum:   t.Checksum,
			MediaType:  t.MediaType,
			RemoteAddr: t.RemoteAddr,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := historyTmpl.Execute(w, rows); err != nil {
		s.logger.Error(r.Context(), "render history", "error", err.Error())
	}
}
