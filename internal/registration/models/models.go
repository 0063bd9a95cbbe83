package models

import (
	"strconv"
	"strings"
	"time"
)

// DialogState enumerates the collecting steps of the registration dialog.
// There is no persisted terminal state: accepting the document commits the
// registration and deletes the draft in the same step.
type DialogState int

const (
	StateCollectName DialogState = iota
	StateCollectStudentID
	StateCollectPhone
	StateCollectVehicleCount
	StateCollectPlate
	StateCollectDocument
)

func (s DialogState) String() string {
	switch s {
	case StateCollectName:
		return "collect_name"
	case StateCollectStudentID:
		return "collect_student_id"
	case StateCollectPhone:
		return "collect_phone"
	case StateCollectVehicleCount:
		return "collect_vehicle_count"
	case StateCollectPlate:
		return "collect_plate"
	case StateCollectDocument:
		return "collect_document"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Draft is the in-progress registration for one user. It lives in the session
// store for the duration of the dialog and is destroyed on completion or
// cancellation. JSON tags keep it serializable for the Redis store.
type Draft struct {
	UserID       int64       `json:"user_id"`
	FullName     string      `json:"full_name,omitempty"`
	StudentID    string      `json:"student_id,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	VehicleCount int         `json:"vehicle_count,omitempty"`
	Plates       []string    `json:"plates,omitempty"`
	State        DialogState `json:"state"`
}

// NewDraft starts a fresh dialog at the first collecting state.
func NewDraft(userID int64) *Draft {
	return &Draft{UserID: userID, State: StateCollectName}
}

// PlatesRemaining reports how many plate numbers are still to be collected.
func (d *Draft) PlatesRemaining() int {
	return d.VehicleCount - len(d.Plates)
}

// Registration is a finalized record. Immutable once appended.
type Registration struct {
	FullName     string
	StudentID    string
	Phone        string
	VehicleCount int
	Plates       []string
	DocumentRef  string
	CommittedAt  time.Time
}

// CommittedAtLayout is the timestamp format written to the record store.
const CommittedAtLayout = "2006-01-02 15:04:05"

// FromDraft finalizes a draft into a registration record.
func FromDraft(d *Draft, documentRef string, committedAt time.Time) Registration {
	return Registration{
		FullName:     d.FullName,
		StudentID:    d.StudentID,
		Phone:        d.Phone,
		VehicleCount: d.VehicleCount,
		Plates:       append([]string(nil), d.Plates...),
		DocumentRef:  documentRef,
		CommittedAt:  committedAt,
	}
}

// JoinedPlates renders the plate list the way it is stored in a row.
func (r Registration) JoinedPlates() string {
	return strings.Join(r.Plates, ", ")
}

// Row projects the registration into the append-order row schema:
// fullName, studentId, phone, vehicleCount, plates, documentRef, committedAt.
func (r Registration) Row() []any {
	return []any{
		r.FullName,
		r.StudentID,
		r.Phone,
		r.VehicleCount,
		r.JoinedPlates(),
		r.DocumentRef,
		r.CommittedAt.Format(CommittedAtLayout),
	}
}
