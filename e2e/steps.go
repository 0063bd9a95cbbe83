package e2e

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"gatepass/internal/gateway"
	"gatepass/internal/registration/docs"
	"gatepass/internal/registration/engine"
	"gatepass/internal/registration/guard"
	"gatepass/internal/registration/models"
	"gatepass/internal/registration/store/records"
	"gatepass/internal/registration/store/session"
	"gatepass/pkg/platform/sentinel"
)

const userID int64 = 42

// TestContext drives the engine directly with in-memory collaborators; the
// scenarios exercise the same dialog semantics the bot exposes over Telegram.
type TestContext struct {
	sessions  *session.MemoryStore
	records   *records.MemoryStore
	engine    *engine.Engine
	lastReply string
}

type stubSource struct{}

func (stubSource) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("document-bytes")), nil
}

type stubObjects struct{}

func (stubObjects) Put(_ context.Context, name string, _ io.Reader) (string, error) {
	return "https://objects.example/" + name, nil
}

func (tc *TestContext) reset(context.Context) error {
	log := slog.New(slog.DiscardHandler)
	tc.sessions = session.NewMemory()
	tc.records = records.NewMemory()
	intake := docs.NewIntake(stubSource{}, stubObjects{}, time.Second, log)
	tc.engine = engine.New(tc.sessions, tc.records, guard.New(tc.records, log), intake)
	tc.lastReply = ""
	return nil
}

func (tc *TestContext) handle(ev gateway.Event) error {
	reply, err := tc.engine.Handle(context.Background(), ev)
	if errors.Is(err, engine.ErrNoDialog) {
		tc.lastReply = ""
		return nil
	}
	if err != nil {
		return err
	}
	tc.lastReply = reply
	return nil
}

func (tc *TestContext) iSendTheCommand(name string) error {
	return tc.handle(gateway.Event{UserID: userID, Kind: gateway.KindCommand, Command: name})
}

func (tc *TestContext) iAnswer(text string) error {
	return tc.handle(gateway.Event{UserID: userID, Kind: gateway.KindText, Text: text})
}

func (tc *TestContext) iAttachADocument() error {
	return tc.handle(gateway.Event{
		UserID:   userID,
		Kind:     gateway.KindDocument,
		FileRef:  "file-1",
		FileName: "orcr.pdf",
	})
}

func (tc *TestContext) theBotAsksFor(fragment string) error {
	if !strings.Contains(tc.lastReply, fragment) {
		return fmt.Errorf("expected reply containing %q, got %q", fragment, tc.lastReply)
	}
	return nil
}

func (tc *TestContext) theBotConfirmsCompletion() error {
	return tc.theBotAsksFor("all set")
}

func (tc *TestContext) theBotRepliesAlreadyRegistered() error {
	return tc.theBotAsksFor("already registered")
}

func (tc *TestContext) alreadyRegistered(studentID string) error {
	return tc.records.Append(context.Background(), models.Registration{
		StudentID:   studentID,
		CommittedAt: time.Now(),
	})
}

func (tc *TestContext) recordStoreHoldsRows(count string, studentID string) error {
	want, err := strconv.Atoi(count)
	if err != nil {
		return err
	}
	got := 0
	for _, row := range tc.records.Rows() {
		if row.StudentID == studentID {
			got++
		}
	}
	if got != want {
		return fmt.Errorf("expected %d rows for %s, got %d", want, studentID, got)
	}
	return nil
}

func (tc *TestContext) myDialogIsGone() error {
	_, err := tc.sessions.Get(context.Background(), userID)
	if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("expected no draft, got %v", err)
	}
	return nil
}

// RegisterSteps binds all step definitions for the registration feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, tc.reset(c)
	})

	ctx.Step(`^a fresh bot$`, func() error { return nil })
	ctx.Step(`^I send the command "([^"]*)"$`, tc.iSendTheCommand)
	ctx.Step(`^I answer "([^"]*)"$`, tc.iAnswer)
	ctx.Step(`^I attach a document$`, tc.iAttachADocument)
	ctx.Step(`^the bot asks for my "([^"]*)"$`, tc.theBotAsksFor)
	ctx.Step(`^the bot confirms completion$`, tc.theBotConfirmsCompletion)
	ctx.Step(`^the bot replies that the ID is already registered$`, tc.theBotRepliesAlreadyRegistered)
	ctx.Step(`^"([^"]*)" is already registered$`, tc.alreadyRegistered)
	ctx.Step(`^the record store holds (\d+) row for "([^"]*)"$`, tc.recordStoreHoldsRows)
	ctx.Step(`^my dialog is gone$`, tc.myDialogIsGone)
}
