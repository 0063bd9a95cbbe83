package docs

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
)

// DriveStore uploads documents to Google Drive and opens them to anyone with
// the link, read-only never-expiring, so the reference stored in the record
// row stays useful.
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

func NewDrive(svc *drive.Service, folderID string) *DriveStore {
	return &DriveStore{svc: svc, folderID: folderID}
}

func (s *DriveStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	created, err := s.svc.Files.Create(meta).
		Media(r).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload to drive: %w", err)
	}

	_, err = s.svc.Permissions.Create(created.Id, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("share drive file %s: %w", created.Id, err)
	}

	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return "https://drive.google.com/file/d/" + created.Id + "/view", nil
}
