package records

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"gatepass/internal/registration/models"
	"gatepass/pkg/platform/sentinel"
)

// SheetsStore appends registration rows to a Google Sheet. The student ID
// lives in column B, matching the row schema of models.Registration.Row.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
	keyRange      string
}

func NewSheets(svc *sheets.Service, spreadsheetID, appendRange string) *SheetsStore {
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
		keyRange:      keyRange(appendRange),
	}
}

// keyRange derives the student-ID column range from the append range, keeping
// the sheet name ("Registrations!A:G" -> "Registrations!B:B").
func keyRange(appendRange string) string {
	sheet, _, found := strings.Cut(appendRange, "!")
	if !found {
		return "B:B"
	}
	return sheet + "!B:B"
}

func (s *SheetsStore) Append(ctx context.Context, reg models.Registration) error {
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.appendRange, &sheets.ValueRange{
			Values: [][]any{reg.Row()},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append registration row: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *SheetsStore) Exists(ctx context.Context, studentID string) (bool, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.keyRange).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("read student id column: %w: %w", sentinel.ErrUnavailable, err)
	}
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if cell, ok := row[0].(string); ok && cell == studentID {
			return true, nil
		}
	}
	return false, nil
}
