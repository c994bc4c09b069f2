package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/couchcryptid/fars-dashboard/internal/presentation"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

const (
	tileColumns = 9
	tileSize    = 56
	tileGap     = 4
)

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"tileX": func(i int) int { return (i % tileColumns) * (tileSize + tileGap) },
	"tileY": func(i int) int { return (i / tileColumns) * (tileSize + tileGap) },
	"gridHeight": func(n int) int {
		rows := (n + tileColumns - 1) / tileColumns
		return rows * (tileSize + tileGap)
	},
}).ParseFS(templateFS, "templates/dashboard.html"))

type pageData struct {
	View       presentation.View
	Tile       int
	TileCenter int
}

// handlePage serves the dashboard without scripts. The map is a tile grid
// of states coloured like the choropleth; boundary paths are not drawn on
// the server. Clients that draw them fetch /api/geography and scale it by
// the map's data-scale (MapView.Scale).
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request, d *presentation.Dashboard) {
	view := d.View()
	if feature := r.URL.Query().Get("feature"); feature != "" {
		v, err := d.ViewFor(feature)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		view = v
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{View: view, Tile: tileSize, TileCenter: tileSize / 2}); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away
}
