package services

import (
	"strings"

	"github.com/soarespng/cv-scanner/internal/models"
)

type KeywordScorer interface {
	Score(text string, keywords []string) models.ScoreResult
}

type keywordScorer struct{}

func NewKeywordScorer() KeywordScorer {
	return &keywordScorer{}
}

// Score implements KeywordScorer. Matching is case-insensitive substring
// containment; repeated keywords are scored once per occurrence and blank
// keywords are ignored.
func (s *keywordScorer) Score(text string, keywords []string) models.ScoreResult {
	lowered := strings.ToLower(text)

	result := models.ScoreResult{
		FoundKeywords:    []string{},
		NotFoundKeywords: []string{},
	}

	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, keyword) {
			result.FoundKeywords = append(result.FoundKeywords, keyword)
		} else {
			result.NotFoundKeywords = append(result.NotFoundKeywords, keyword)
		}
	}

	if total := len(result.FoundKeywords) + len(result.NotFoundKeywords); total > 0 {
		result.Compatibility = float64(len(result.FoundKeywords)) / float64(total) * 100
	}

	return result
}

// ParseKeywords splits a comma separated list and drops blank entries.
func ParseKeywords(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		keywords = append(keywords, part)
	}
	return keywords
}
