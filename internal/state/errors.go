package state

import "fmt"

// Code is a machine-readable error code. The set is closed: every
// failure ProcessCommand can report is one of these conditions, so
// callers can match exhaustively.
type Code string

const (
	CodeNoDocumentOpen             Code = "NO_DOCUMENT_OPEN"
	CodeDocumentNotFound           Code = "DOCUMENT_NOT_FOUND"
	CodeFrameNotInDocument         Code = "FRAME_NOT_IN_DOCUMENT"
	CodeAnimationNotInDocument     Code = "ANIMATION_NOT_IN_DOCUMENT"
	CodeAnimationAlreadyExists     Code = "ANIMATION_ALREADY_EXISTS"
	CodeNotEditingAnyAnimation     Code = "NOT_EDITING_ANY_ANIMATION"
	CodeInvalidAnimationFrameIndex Code = "INVALID_ANIMATION_FRAME_INDEX"
	CodeNotAdjustingFrameDuration  Code = "NOT_ADJUSTING_FRAME_DURATION"

	// CodeUndoNotAvailable is reserved for the undo/redo contract
	// point; no handler returns it yet.
	CodeUndoNotAvailable Code = "UNDO_NOT_AVAILABLE"

	// I/O boundary failures. These carry a cause.
	CodeDialogFailed    Code = "DIALOG_FAILED"
	CodeSheetReadFailed Code = "SHEET_READ_FAILED"
	CodeSheetSaveFailed Code = "SHEET_SAVE_FAILED"
)

var messages = map[Code]string{
	CodeNoDocumentOpen:             "No document is open",
	CodeDocumentNotFound:           "Requested document was not found",
	CodeFrameNotInDocument:         "Requested frame is not in document",
	CodeAnimationNotInDocument:     "Requested animation is not in document",
	CodeAnimationAlreadyExists:     "An animation with this name already exists",
	CodeNotEditingAnyAnimation:     "Not currently editing any animation",
	CodeInvalidAnimationFrameIndex: "Animation does not have a frame at the requested index",
	CodeNotAdjustingFrameDuration:  "Not currently adjusting animation frame duration",
	CodeUndoNotAvailable:           "Cannot perform undo operation",
	CodeDialogFailed:               "File dialog failed",
	CodeSheetReadFailed:            "Could not read sheet file",
	CodeSheetSaveFailed:            "Could not save sheet file",
}

// Error is the taxonomy's concrete error type. Cause is only set at
// I/O and decode boundaries; pure state failures carry a bare code.
type Error struct {
	Code  Code
	Cause error
}

func (e *Error) Error() string {
	msg, ok := messages[e.Code]
	if !ok {
		msg = string(e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches two taxonomy errors by code, so errors.Is works against
// the exported sentinels regardless of attached causes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is matching.
var (
	ErrNoDocumentOpen             = &Error{Code: CodeNoDocumentOpen}
	ErrDocumentNotFound           = &Error{Code: CodeDocumentNotFound}
	ErrFrameNotInDocument         = &Error{Code: CodeFrameNotInDocument}
	ErrAnimationNotInDocument     = &Error{Code: CodeAnimationNotInDocument}
	ErrAnimationAlreadyExists     = &Error{Code: CodeAnimationAlreadyExists}
	ErrNotEditingAnyAnimation     = &Error{Code: CodeNotEditingAnyAnimation}
	ErrInvalidAnimationFrameIndex = &Error{Code: CodeInvalidAnimationFrameIndex}
	ErrNotAdjustingFrameDuration  = &Error{Code: CodeNotAdjustingFrameDuration}
)

func errCode(code Code) error {
	return &Error{Code: code}
}

func wrapCause(code Code, cause error) error {
	return &Error{Code: code, Cause: cause}
}
