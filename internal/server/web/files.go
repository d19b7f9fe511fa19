package web

import (
	"html/template"
	"net/http"
	"os"
	"path"

	"github.com/samber/lo"

	"httpshare/internal/filex"
)

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head><title>Index of {{.Path}}</title></head>
<body>
<h1>Index of {{.Path}}</h1>
<ul>
{{- range .Entries}}
<li><a href="{{.Href}}">{{.Name}}</a>{{if not .IsDir}} ({{.Size}} bytes){{end}}</li>
{{- end}}
</ul>
</body>
</html>
`))

type listingEntry struct {
	Name  string
	Href  string
	IsDir bool
	Size  int64
}

type listingData struct {
	Path    string
	Entries []listingEntry
}

// handleFiles serves GET/HEAD requests for files under the shared
// directory; directories render an HTML index.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	track := trackFrom(r.Context())
	if track != nil {
		track.SetLastURI(r.URL.Path)
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fsPath, err := filex.SafeJoin(s.dir, r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	fi, err := os.Stat(fsPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if fi.IsDir() {
		s.serveListing(w, r, fsPath)
		return
	}

	if track != nil {
		track.AddRequested(fi.Size())
	}

	s.logger.Debug(r.Context(), "serving file", "path", r.URL.Path, "size", fi.Size())
	http.ServeFile(w, r, fsPath)
}

func (s *Server) serveListing(w http.ResponseWriter, r *http.Request, fsPath string) {
	entries, err := os.ReadDir(fsPath)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	toEntry := func(e os.DirEntry, _ int) listingEntry {
		item := listingEntry{
			Name:  e.Name(),
			Href:  path.Join(r.URL.Path, e.Name()),
			IsDir: e.IsDir(),
		}
		if e.IsDir() {
			item.Name += "/"
			item.Href += "/"
		} else if info, err := e.Info(); err == nil {
			item.Size = info.Size()
		}
		return item
	}

	// directories first, then files, each group already name-sorted by
	// os.ReadDir
	dirs := lo.Filter(entries, func(e os.DirEntry, _ int) bool { return e.IsDir() })
	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool { return !e.IsDir() })

	data := listingData{
		Path:    r.URL.Path,
		Entries: append(lo.Map(dirs, toEntry), lo.Map(files, toEntry)...),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := listingTmpl.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "render listing", "error", err.Error())
	}
}
