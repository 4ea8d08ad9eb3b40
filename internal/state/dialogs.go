package state

// File extensions the dialogs filter on.
const (
	SheetFileExtension = "sheet"
)

// ImageFileExtensions lists the importable image formats.
var ImageFileExtensions = []string{"png", "tga", "bmp"}

// Dialogs is the seam to the platform file pickers. Implementations
// are synchronous; cancellation is reported through ok=false and is
// not an error.
type Dialogs interface {
	// PickSaveFile asks for a save destination filtered on extension.
	PickSaveFile(extension string) (path string, ok bool, err error)
	// PickFiles asks for one or more existing files filtered on the
	// given extensions.
	PickFiles(extensions []string) (paths []string, ok bool, err error)
}

// DialogQueue is a Dialogs implementation fed with pre-resolved
// answers. The TUI's picker modals collect a path first, prime the
// queue, and emit the command in the same pass; tests script it the
// same way. An unprimed request behaves as a cancelled dialog.
type DialogQueue struct {
	saves []string
	opens [][]string
}

// QueueSave primes the next PickSaveFile answer.
func (q *DialogQueue) QueueSave(path string) {
	q.saves = append(q.saves, path)
}

// QueueFiles primes the next PickFiles answer.
func (q *DialogQueue) QueueFiles(paths []string) {
	q.opens = append(q.opens, paths)
}

func (q *DialogQueue) PickSaveFile(string) (string, bool, error) {
	if len(q.saves) == 0 {
		return "", false, nil
	}
	path := q.saves[0]
	q.saves = q.saves[1:]
	return path, true, nil
}

func (q *DialogQueue) PickFiles([]string) ([]string, bool, error) {
	if len(q.opens) == 0 {
		return nil, false, nil
	}
	paths := q.opens[0]
	q.opens = q.opens[1:]
	return paths, true, nil
}
