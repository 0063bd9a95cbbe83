// Package engine is the registration conversation state machine. For each
// inbound event it loads the user's draft, dispatches to the validator for
// the current state, mutates and advances on accept, re-prompts on reject,
// and on accepting the document runs the two-phase commit: upload the
// document, then append the finalized row.
//
// The engine itself is not safe for concurrent events of the same user; the
// bot loop serializes per user id before calling Handle.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"gatepass/internal/audit"
	"gatepass/internal/gateway"
	"gatepass/internal/platform/metrics"
	"gatepass/internal/registration/docs"
	"gatepass/internal/registration/models"
	"gatepass/internal/registration/store/records"
	"gatepass/internal/registration/store/session"
	"gatepass/internal/registration/validate"
	"gatepass/pkg/platform/sentinel"
)

// Entry and abort command names, without the leading slash.
const (
	CommandRegister = "register"
	CommandCancel   = "cancel"
)

// ErrNoDialog tells the caller the event belongs to default handling: the
// user has no active draft and did not send the entry command.
var ErrNoDialog = errors.New("no active dialog")

// DuplicateChecker is the guard's contract.
type DuplicateChecker interface {
	IsRegistered(ctx context.Context, studentID string) (bool, error)
}

// DocumentIntake moves an uploaded file into durable object storage.
type DocumentIntake interface {
	Store(ctx context.Context, fileRef, name string) (string, error)
}

type Engine struct {
	sessions session.Store
	records  records.Store
	guard    DuplicateChecker
	intake   DocumentIntake
	auditor  *audit.Publisher
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Engine)

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func WithAudit(pub *audit.Publisher) Option {
	return func(e *Engine) { e.auditor = pub }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the commit timestamp source. Tests use it to pin
// committedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(sessions session.Store, recordStore records.Store, guard DuplicateChecker, intake DocumentIntake, opts ...Option) *Engine {
	e := &Engine{
		sessions: sessions,
		records:  recordStore,
		guard:    guard,
		intake:   intake,
		auditor:  audit.NewPublisher(audit.NewMemoryStore()),
		metrics:  metrics.New(prometheus.NewRegistry()),
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one inbound event and returns the reply text. ErrNoDialog
// means the event was not for the engine at all.
func (e *Engine) Handle(ctx context.Context, ev gateway.Event) (string, error) {
	draft, err := e.sessions.Get(ctx, ev.UserID)
	if errors.Is(err, sentinel.ErrNotFound) {
		if ev.Kind == gateway.KindCommand && ev.Command == CommandRegister {
			return e.start(ctx, ev.UserID)
		}
		return "", ErrNoDialog
	}
	if err != nil {
		e.log.Error("session lookup failed", "user_id", ev.UserID, "err", err)
		return msgStoreRetry, nil
	}

	if ev.Kind == gateway.KindCommand {
		if ev.Command == CommandCancel {
			return e.cancel(ctx, draft)
		}
		// Any other command mid-dialog, /register included, is a reminder
		// rather than a restart; restarting implicitly would drop answers.
		return msgInProgress, nil
	}

	return e.advance(ctx, draft, ev)
}

func (e *Engine) start(ctx context.Context, userID int64) (string, error) {
	draft := models.NewDraft(userID)
	if err := e.sessions.Put(ctx, draft); err != nil {
		e.log.Error("start dialog failed", "user_id", userID, "err", err)
		return msgStoreRetry, nil
	}
	e.metrics.DialogsStarted.Inc()
	e.emit(ctx, userID, audit.ActionDialogStarted, "")
	return promptName, nil
}

func (e *Engine) cancel(ctx context.Context, draft *models.Draft) (string, error) {
	if err := e.sessions.Delete(ctx, draft.UserID); err != nil {
		e.log.Error("cancel dialog failed", "user_id", draft.UserID, "err", err)
		return msgStoreRetry, nil
	}
	e.metrics.DialogsCancelled.Inc()
	e.emit(ctx, draft.UserID, audit.ActionDialogCancelled, draft.State.String())
	return msgCancelled, nil
}

// advance runs the validator for the current state. On rejection the draft is
// left untouched and the reply repeats the state's instructional text plus
// the reason.
func (e *Engine) advance(ctx context.Context, draft *models.Draft, ev gateway.Event) (string, error) {
	switch draft.State {
	case models.StateCollectName:
		return e.collectText(ctx, draft, ev, func(d *models.Draft, v string) {
			d.FullName = v
			d.State = models.StateCollectStudentID
		})
	case models.StateCollectStudentID:
		return e.collectStudentID(ctx, draft, ev)
	case models.StateCollectPhone:
		return e.collectText(ctx, draft, ev, func(d *models.Draft, v string) {
			d.Phone = v
			d.State = models.StateCollectVehicleCount
		})
	case models.StateCollectVehicleCount:
		return e.collectVehicleCount(ctx, draft, ev)
	case models.StateCollectPlate:
		return e.collectPlate(ctx, draft, ev)
	case models.StateCollectDocument:
		return e.collectDocument(ctx, draft, ev)
	default:
		e.log.Error("draft in unknown state", "user_id", draft.UserID, "state", draft.State)
		return e.cancel(ctx, draft)
	}
}

// collectText handles the permissive free-text states: accept any non-empty
// input, apply the mutation, advance.
func (e *Engine) collectText(ctx context.Context, draft *models.Draft, ev gateway.Event, apply func(*models.Draft, string)) (string, error) {
	value, err := validate.Text(ev.Text)
	if err != nil {
		return e.reject(draft, rejectEmpty), nil
	}
	apply(draft, value)
	return e.save(ctx, draft)
}

func (e *Engine) collectStudentID(ctx context.Context, draft *models.Draft, ev gateway.Event) (string, error) {
	value, err := validate.Text(ev.Text)
	if err != nil {
		return e.reject(draft, rejectEmpty), nil
	}

	registered, err := e.guard.IsRegistered(ctx, value)
	if err != nil {
		// Fail closed: an unreachable store re-prompts, it never reads as
		// "not registered".
		return msgStoreRetry, nil
	}
	if registered {
		e.metrics.DuplicatesRejected.Inc()
		e.emit(ctx, draft.UserID, audit.ActionDuplicateRejected, value)
		if err := e.sessions.Delete(ctx, draft.UserID); err != nil {
			e.log.Error("delete draft failed", "user_id", draft.UserID, "err", err)
		}
		return msgDuplicate, nil
	}

	draft.StudentID = value
	draft.State = models.StateCollectPhone
	return e.save(ctx, draft)
}

func (e *Engine) collectVehicleCount(ctx context.Context, draft *models.Draft, ev gateway.Event) (string, error) {
	count, err := validate.VehicleCount(ev.Text)
	if errors.Is(err, validate.ErrOutOfRange) {
		return e.reject(draft, rejectOutOfRange), nil
	}
	if err != nil {
		return e.reject(draft, rejectNotNumber), nil
	}

	draft.VehicleCount = count
	draft.Plates = []string{}
	draft.State = models.StateCollectPlate
	return e.save(ctx, draft)
}

func (e *Engine) collectPlate(ctx context.Context, draft *models.Draft, ev gateway.Event) (string, error) {
	value, err := validate.Text(ev.Text)
	if err != nil {
		return e.reject(draft, rejectEmpty), nil
	}

	draft.Plates = append(draft.Plates, value)
	if len(draft.Plates) == draft.VehicleCount {
		draft.State = models.StateCollectDocument
	}
	return e.save(ctx, draft)
}

func (e *Engine) collectDocument(ctx context.Context, draft *models.Draft, ev gateway.Event) (string, error) {
	if ev.Kind != gateway.KindDocument || ev.FileRef == "" {
		return e.reject(draft, rejectNoDocument), nil
	}

	ref, err := e.intake.Store(ctx, ev.FileRef, documentName(draft.StudentID, ev.FileName))
	if err != nil {
		e.metrics.UploadFailures.Inc()
		e.log.Warn("document intake failed", "user_id", draft.UserID, "err", err)
		if errors.Is(err, docs.ErrTimedOut) {
			return msgUploadTimedOut, nil
		}
		return msgUploadFailed, nil
	}
	e.emit(ctx, draft.UserID, audit.ActionDocumentStored, ref)

	reg := models.FromDraft(draft, ref, e.now())
	if err := e.records.Append(ctx, reg); err != nil {
		// The uploaded document is now orphaned. No automatic retry and no
		// rollback of the upload; flag it for operator reconciliation.
		e.metrics.CommitFailures.Inc()
		e.log.Error("row append failed after upload, document orphaned",
			"user_id", draft.UserID,
			"student_id", draft.StudentID,
			"document_ref", ref,
			"err", err)
		e.emit(ctx, draft.UserID, audit.ActionCommitFailed, ref)
		if derr := e.sessions.Delete(ctx, draft.UserID); derr != nil {
			e.log.Error("delete draft failed", "user_id", draft.UserID, "err", derr)
		}
		return msgCommitFailed, nil
	}

	e.metrics.RegistrationsCompleted.Inc()
	e.emit(ctx, draft.UserID, audit.ActionCommitted, draft.StudentID)
	if err := e.sessions.Delete(ctx, draft.UserID); err != nil {
		e.log.Error("delete draft failed", "user_id", draft.UserID, "err", err)
	}
	return msgCompleted, nil
}

// save persists the mutated draft and returns the next prompt.
func (e *Engine) save(ctx context.Context, draft *models.Draft) (string, error) {
	if err := e.sessions.Put(ctx, draft); err != nil {
		e.log.Error("persist draft failed", "user_id", draft.UserID, "err", err)
		return msgStoreRetry, nil
	}
	return prompt(draft), nil
}

func (e *Engine) reject(draft *models.Draft, reason string) string {
	e.metrics.ValidationRejections.WithLabelValues(draft.State.String()).Inc()
	return reason + "\n" + prompt(draft)
}

func (e *Engine) emit(ctx context.Context, userID int64, action audit.Action, detail string) {
	if err := e.auditor.Emit(ctx, audit.Event{UserID: userID, Action: action, Detail: detail}); err != nil {
		e.log.Warn("audit emit failed", "action", action, "err", err)
	}
}

// documentName builds the object-store name: student ID plus a fresh UUID so
// re-uploads never collide, keeping the original extension when known.
func documentName(studentID, fileName string) string {
	return fmt.Sprintf("%s_%s%s", studentID, uuid.NewString(), filepath.Ext(fileName))
}
