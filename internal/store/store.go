package store

// Store defines the interface for comparison report persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return a *NotFoundError if the report doesn't exist (Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveReport atomically saves a report under the given job ID,
	// overwriting any existing report for that ID.
	SaveReport(jobID string, report *Report) error

	// LoadReport retrieves the report for the given job ID.
	// Returns ErrNotFound if no report exists.
	LoadReport(jobID string) (*Report, error)

	// ListReports returns metadata for all available reports. The returned
	// slice may be empty.
	ListReports() ([]ReportInfo, error)

	// DeleteReport removes the report for the given job ID.
	// Returns ErrNotFound if no report exists.
	DeleteReport(jobID string) error
}

// ErrNotFound is returned when a requested report does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing report error.
type NotFoundError struct {
	JobID string
}

func (e *NotFoundError) Error() string {
	if e.JobID != "" {
		return "report not found: " + e.JobID
	}
	return "report not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
