package engine

import (
	"fmt"

	"gatepass/internal/registration/models"
	"gatepass/internal/registration/validate"
)

// Every user-facing line lives here. No raw internal error ever reaches the
// user; each failure maps to a short instruction to retry or correct input.
const (
	promptName         = "Let's register your vehicle. What is your full name?"
	promptStudentID    = "What is your student ID number?"
	promptPhone        = "What is your contact number?"
	promptVehicleCount = "How many vehicles are you registering? (1-3)"
	promptDocument     = "Please attach your supporting document (OR/CR or campus ID) as a file."

	rejectEmpty      = "That can't be empty."
	rejectNotNumber  = "Please reply with a number."
	rejectNoDocument = "I need the document as a file attachment."

	msgUploadFailed   = "I couldn't save your document. Please send it again."
	msgUploadTimedOut = "Uploading took too long. Please send the document again."
	msgStoreRetry     = "Storage is temporarily unavailable. Please send that again."
	msgDuplicate      = "That student ID is already registered. If this looks wrong, contact the security office."
	msgCancelled      = "Registration cancelled. Send /register to start over."
	msgInProgress     = "You already have a registration in progress. Answer the last question or send /cancel."
	msgCommitFailed   = "Something went wrong filing your registration. Please contact the security office."
	msgCompleted      = "You're all set! Your registration has been filed."
)

var rejectOutOfRange = fmt.Sprintf("Please enter a number between 1 and %d.", validate.MaxVehicles)

func platePrompt(n, total int) string {
	if total == 1 {
		return "What is your plate number?"
	}
	return fmt.Sprintf("What is the plate number of vehicle %d of %d?", n, total)
}

// prompt returns the instructional text for the draft's current state, used
// both to advance and to re-prompt after a rejection.
func prompt(d *models.Draft) string {
	switch d.State {
	case models.StateCollectName:
		return promptName
	case models.StateCollectStudentID:
		return promptStudentID
	case models.StateCollectPhone:
		return promptPhone
	case models.StateCollectVehicleCount:
		return promptVehicleCount
	case models.StateCollectPlate:
		return platePrompt(len(d.Plates)+1, d.VehicleCount)
	case models.StateCollectDocument:
		return promptDocument
	default:
		return promptName
	}
}
