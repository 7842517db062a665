package store

import "time"

// CompareConfig holds the configuration of a comparison job (report copy).
// This avoids import cycles with the server package.
type CompareConfig struct {
	RefPath      string  `json:"refPath"`
	CandPath     string  `json:"candPath"`
	Engine       string  `json:"engine"` // reference, fast, both
	WindowSize   int     `json:"windowSize,omitempty"`
	K1           float64 `json:"k1,omitempty"`
	K2           float64 `json:"k2,omitempty"`
	DynamicRange float64 `json:"dynamicRange,omitempty"`
	Resize       bool    `json:"resize,omitempty"`
}

// EngineScore is the outcome of one engine run within a comparison.
type EngineScore struct {
	// MSSIM is the mean of the per-pixel similarity map.
	MSSIM float64 `json:"mssim"`

	// MapWidth and MapHeight are the valid-region dimensions the map covered.
	MapWidth  int `json:"mapWidth"`
	MapHeight int `json:"mapHeight"`

	// Elapsed is the engine runtime in seconds.
	Elapsed float64 `json:"elapsed"`
}

// Report is a persisted comparison result. The per-pixel map is not stored;
// reports capture the scalar scores and enough context to rerun the
// comparison.
type Report struct {
	// JobID is the unique identifier of the comparison job.
	JobID string `json:"jobId"`

	// Config holds the comparison configuration the scores were produced with.
	Config CompareConfig `json:"config"`

	// Width and Height are the compared images' dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Reference and Fast hold the per-engine scores; each is nil when that
	// engine was not selected.
	Reference *EngineScore `json:"reference,omitempty"`
	Fast      *EngineScore `json:"fast,omitempty"`

	// Timestamp records when the report was created.
	Timestamp time.Time `json:"timestamp"`
}

// ReportInfo contains report metadata for efficient listing.
type ReportInfo struct {
	JobID     string    `json:"jobId"`
	RefPath   string    `json:"refPath"`
	CandPath  string    `json:"candPath"`
	Engine    string    `json:"engine"`
	Timestamp time.Time `json:"timestamp"`
}

// ToInfo converts a full Report to its metadata.
func (r *Report) ToInfo() ReportInfo {
	return ReportInfo{
		JobID:     r.JobID,
		RefPath:   r.Config.RefPath,
		CandPath:  r.Config.CandPath,
		Engine:    r.Config.Engine,
		Timestamp: r.Timestamp,
	}
}

// Validate checks that the report carries the fields persistence relies on.
func (r *Report) Validate() error {
	if r.JobID == "" {
		return &ValidationError{Field: "JobID", Reason: "cannot be empty"}
	}
	if r.Config.RefPath == "" {
		return &ValidationError{Field: "Config.RefPath", Reason: "cannot be empty"}
	}
	if r.Config.CandPath == "" {
		return &ValidationError{Field: "Config.CandPath", Reason: "cannot be empty"}
	}
	if r.Reference == nil && r.Fast == nil {
		return &ValidationError{Field: "Reference/Fast", Reason: "at least one engine score required"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a report validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
