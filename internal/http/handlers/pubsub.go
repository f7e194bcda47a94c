package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/pubsub"
)

// TriggerHandler runs the job named in a pushed Pub/Sub message.
func TriggerHandler(scanner Scanner, importer HistoryImporter, notifier notifier.Notifier, usage metrics.MetricsStore, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received trigger message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		trigger := pubsub.Trigger{}
		if err := pubsubClient.ProcessMessage(rawData, &trigger); err != nil {
			http.Error(w, "Invalid trigger payload", http.StatusBadRequest)
			return
		}
		isDryRun := IsDryRunFromContext(r) || trigger.DryRun
		log.Info("Running triggered job", "job", trigger.Job, "trigger_id", trigger.RunID, "dry_run", isDryRun)

		switch trigger.Job {
		case pubsub.JobScan:
			_, err = runScan(r.Context(), scanner, notifier, usage, isDryRun)
		case pubsub.JobImport:
			_, err = runImport(r.Context(), importer, notifier, usage, false, isDryRun)
		case pubsub.JobRefresh:
			_, err = runImport(r.Context(), importer, notifier, usage, true, isDryRun)
		default:
			log.Warn("Unknown job in trigger", "job", trigger.Job)
			http.Error(w, "Unknown job", http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, "Job failed", statusFor(err))
			return
		}
		w.Write([]byte("OK"))
	}
}
