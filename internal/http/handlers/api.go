package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/metrics"
)

func WeekHandler(reports Reports) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := reports.Week(r.Context())
		if err != nil {
			log.Error("Failed to build week report", "error", err)
			http.Error(w, "Failed to build week report", statusFor(err))
			return
		}
		writeJSON(w, report)
	}
}

func TodayHandler(reports Reports) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := reports.Today(r.Context())
		if err != nil {
			log.Error("Failed to build today report", "error", err)
			http.Error(w, "Failed to build today report", statusFor(err))
			return
		}
		writeJSON(w, report)
	}
}

func HistoryHandler(reports Reports) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := reports.History(r.Context())
		if err != nil {
			log.Error("Failed to build history report", "error", err)
			http.Error(w, "Failed to build history report", statusFor(err))
			return
		}
		writeJSON(w, report)
	}
}

// playerView is the JSON shape of a stored player.
type playerView struct {
	Tag    string      `json:"tag"`
	Name   string      `json:"name"`
	Status clan.Status `json:"status"`
	Icon   string      `json:"icon"`
	Note   string      `json:"note"`
}

// ListPlayersHandler exposes admin notes, so the route must sit behind the admin token.
func ListPlayersHandler(store clan.ClanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.GetAllPlayers(r.Context())
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		views := make([]playerView, 0, len(players))
		for _, p := range players {
			views = append(views, playerView{Tag: p.Tag, Name: p.Name, Status: p.Status, Icon: p.Status.Icon(), Note: p.Note})
		}
		writeJSON(w, views)
	}
}

func UsageHandler(usage metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := usage.GetAll()
		if err != nil {
			http.Error(w, "Failed to get usage counters", http.StatusInternalServerError)
			log.Error("Failed to get usage counters", "error", err)
			return
		}
		writeJSON(w, values)
	}
}
