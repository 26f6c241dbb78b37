package models

import "encoding/json"

type ScanStatus string

const (
	StatusCompleted ScanStatus = "completed"
	StatusFailed    ScanStatus = "failed"
)

// ErrorCode tells clients which pipeline stage failed a file.
type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation"
	ErrorCodeStorage    ErrorCode = "storage"
	ErrorCodeExtraction ErrorCode = "extraction"
	ErrorCodeCanceled   ErrorCode = "canceled"
	ErrorCodeInternal   ErrorCode = "internal"
)

// ResultRecord is the outcome of scanning one uploaded file.
type ResultRecord struct {
	ProfileRecord
	ScoreResult

	DocumentID       string     `json:"document_id,omitempty"`
	Filename         string     `json:"filename"`
	FileURL          string     `json:"file_url,omitempty"`
	OriginalFilename string     `json:"original_filename"`
	Status           ScanStatus `json:"status"`
	ErrorCode        ErrorCode  `json:"error_code,omitempty"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
}

// MarshalJSON adds the formatted "compatibilidade" field next to the raw score.
func (r ResultRecord) MarshalJSON() ([]byte, error) {
	type plain ResultRecord
	return json.Marshal(struct {
		plain
		Compatibilidade string `json:"compatibilidade"`
	}{
		plain:           plain(r),
		Compatibilidade: r.FormattedCompatibility(),
	})
}

type ScanSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Summarize counts completed and failed records.
func Summarize(records []ResultRecord) ScanSummary {
	summary := ScanSummary{Total: len(records)}
	for _, r := range records {
		if r.Status == StatusCompleted {
			summary.Completed++
		} else {
			summary.Failed++
		}
	}
	return summary
}
