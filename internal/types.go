package internal

import "time"

// CorrectionRecord is one completed correction as persisted to history.
type CorrectionRecord struct {
	ID            string    `json:"id"`
	OriginalText  string    `json:"original_text"`
	CorrectedText string    `json:"corrected_text"`
	Changed       bool      `json:"changed"`
	CreatedAt     time.Time `json:"created_at"`
}
