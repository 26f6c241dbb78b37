package models

import "fmt"

// NotAvailable is the placeholder for a profile field no rule could fill.
const NotAvailable = "N/A"

// ProfileRecord holds the contact fields parsed out of a résumé.
type ProfileRecord struct {
	FirstName  string `json:"primeiro_nome"`
	MiddleName string `json:"segundo_nome"`
	LastName   string `json:"ultimo_nome"`
	Phone      string `json:"telefone"`
	Email      string `json:"email"`
}

// NewProfileRecord returns a record with every field set to NotAvailable.
func NewProfileRecord() ProfileRecord {
	return ProfileRecord{
		FirstName:  NotAvailable,
		MiddleName: NotAvailable,
		LastName:   NotAvailable,
		Phone:      NotAvailable,
		Email:      NotAvailable,
	}
}

// ScoreResult is the keyword coverage of one document.
type ScoreResult struct {
	FoundKeywords    []string `json:"found_keywords"`
	NotFoundKeywords []string `json:"not_found_keywords"`
	Compatibility    float64  `json:"compatibility_score"`
}

// FormattedCompatibility renders the score with two decimals and a percent sign.
func (s ScoreResult) FormattedCompatibility() string {
	return fmt.Sprintf("%.2f%%", s.Compatibility)
}
