package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type dashboardData struct {
	ClanTag string
}

// DashboardHandler serves the dashboard page. The page loads its data from the /api routes.
func DashboardHandler(clanTag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTemplate.Execute(w, dashboardData{ClanTag: clanTag}); err != nil {
			log.Error("Failed to render dashboard", "error", err)
		}
	}
}
