package services

import (
	"regexp"
	"strings"

	"github.com/soarespng/cv-scanner/internal/models"
)

var (
	namePattern       = regexp.MustCompile(`(?i)(?:nome|name):\s*([A-Za-zÀ-ÿ\s.\-]+)`)
	phonePattern      = regexp.MustCompile(`(?i)(?:telefone|celular|contato):\s*(?:\(?\d{2,3}\)?\s*)?\d{4,5}[-\s]?\d{4}`)
	labeledEmailRegex = regexp.MustCompile(`(?i)e-?mail:\s*([\p{L}\p{N}_.\-]+@[\p{L}\p{N}_.\-]+)`)
	bareEmailRegex    = regexp.MustCompile(`[\p{L}\p{N}_.\-]+@[\p{L}\p{N}_.\-]+`)
)

// Phone label prefixes stripped from a phone match, in canonical casing only.
var phoneLabelPrefixes = []string{"Telefone: ", "Celular: ", "Contato: "}

type ProfileParser interface {
	Parse(text string) models.ProfileRecord
}

type profileParser struct{}

func NewProfileParser() ProfileParser {
	return &profileParser{}
}

// Parse implements ProfileParser. Every rule only looks at the first match.
func (p *profileParser) Parse(text string) models.ProfileRecord {
	profile := models.NewProfileRecord()

	if first, middle, last, ok := ExtractName(text); ok {
		profile.FirstName = first
		profile.MiddleName = middle
		profile.LastName = last
	}

	if phone, ok := ExtractPhone(text); ok {
		profile.Phone = phone
	}

	if email, ok := ExtractEmail(text); ok {
		profile.Email = email
	}

	return profile
}

// ExtractName splits the run after the first "nome:" label into first,
// middle and last name. Parts that are missing come back as NotAvailable.
func ExtractName(text string) (first, middle, last string, ok bool) {
	first, middle, last = models.NotAvailable, models.NotAvailable, models.NotAvailable

	match := namePattern.FindStringSubmatch(text)
	if match == nil {
		return first, middle, last, false
	}

	parts := strings.Fields(NormalizeText(match[1]))
	switch {
	case len(parts) == 0:
		return first, middle, last, false
	case len(parts) == 1:
		first = parts[0]
	case len(parts) == 2:
		first, last = parts[0], parts[1]
	default:
		first, middle, last = parts[0], parts[1], strings.Join(parts[2:], " ")
	}

	return first, middle, last, true
}

// ExtractPhone returns the first labeled phone number. A canonical label
// prefix such as "Telefone: " is stripped; other casings are kept verbatim.
func ExtractPhone(text string) (string, bool) {
	match := phonePattern.FindString(text)
	if match == "" {
		return "", false
	}

	phone := NormalizeText(match)
	for _, prefix := range phoneLabelPrefixes {
		if strings.HasPrefix(phone, prefix) {
			phone = strings.TrimSpace(strings.TrimPrefix(phone, prefix))
			break
		}
	}

	return phone, phone != ""
}

// ExtractEmail prefers an address after an "e-mail:" label and falls back
// to the first email-shaped token anywhere in the text.
func ExtractEmail(text string) (string, bool) {
	if match := labeledEmailRegex.FindStringSubmatch(text); match != nil {
		return NormalizeText(match[1]), true
	}

	if match := bareEmailRegex.FindString(text); match != "" {
		return NormalizeText(match), true
	}

	return "", false
}
