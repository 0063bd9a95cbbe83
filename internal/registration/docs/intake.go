// Package docs moves the user's supporting document from the messaging
// platform into the object store and hands back a shareable reference.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gatepass/internal/gateway"
)

// ErrTimedOut marks an intake that exceeded the configured upload budget.
// Without it a stalled download would park the user's dialog forever.
var ErrTimedOut = errors.New("document intake timed out")

// ObjectStore accepts a named byte stream and returns a durable,
// link-accessible reference.
type ObjectStore interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

type Intake struct {
	files   gateway.FileSource
	objects ObjectStore
	timeout time.Duration
	log     *slog.Logger
}

func NewIntake(files gateway.FileSource, objects ObjectStore, timeout time.Duration, log *slog.Logger) *Intake {
	return &Intake{files: files, objects: objects, timeout: timeout, log: log}
}

// Store resolves the platform file reference, streams it into the object
// store under the given name, and returns the resulting reference. Any step
// failing surfaces as an error; the caller keeps the draft and re-prompts.
func (i *Intake) Store(ctx context.Context, fileRef, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	stream, err := i.files.Open(ctx, fileRef)
	if err != nil {
		return "", i.wrap(fmt.Errorf("resolve document: %w", err))
	}
	defer stream.Close()

	ref, err := i.objects.Put(ctx, name, stream)
	if err != nil {
		return "", i.wrap(fmt.Errorf("store document: %w", err))
	}

	i.log.Info("document stored", "name", name, "ref", ref)
	return ref, nil
}

func (i *Intake) wrap(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	}
	return err
}
