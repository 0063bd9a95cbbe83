package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	DialogsStarted         prometheus.Counter
	DialogsCancelled       prometheus.Counter
	RegistrationsCompleted prometheus.Counter
	DuplicatesRejected     prometheus.Counter
	ValidationRejections   *prometheus.CounterVec
	UploadFailures         prometheus.Counter
	CommitFailures         prometheus.Counter
}

// New creates and registers all metrics against the given registerer. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DialogsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_dialogs_started_total",
			Help: "Registration dialogs opened via the entry command",
		}),
		DialogsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_dialogs_cancelled_total",
			Help: "Registration dialogs aborted by the user",
		}),
		RegistrationsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_registrations_completed_total",
			Help: "Registrations committed to the record store",
		}),
		DuplicatesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_duplicates_rejected_total",
			Help: "Dialogs ended because the student ID was already registered",
		}),
		ValidationRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_validation_rejections_total",
			Help: "Inputs rejected by a field validator, by dialog state",
		}, []string{"state"}),
		UploadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_upload_failures_total",
			Help: "Document intake attempts that failed or timed out",
		}),
		CommitFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_commit_failures_total",
			Help: "Record appends that failed after a successful upload",
		}),
	}
}
