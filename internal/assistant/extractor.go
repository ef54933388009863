package assistant

import (
	"regexp"
	"strings"

	"github.com/studypal/backend/internal/models"
)

// maxExtractedCards caps the heuristic extractor's output.
const maxExtractedCards = 15

// maxTermLength rejects "term: definition" matches whose term half is too
// long to plausibly be a term.
const maxTermLength = 100

var (
	colonPattern  = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	dashPattern   = regexp.MustCompile(`^([^-]+)\s*-\s*(.+)$`)
	equalsPattern = regexp.MustCompile(`^([^=]+)=\s*(.+)$`)
)

// ExtractFlashcards is the local fallback when the assistant is unavailable:
// line-oriented "term: definition" / "term - definition" / "term = definition"
// extraction, no network.
func ExtractFlashcards(text string) []models.CardInput {
	var cards []models.CardInput

	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, pattern := range []*regexp.Regexp{colonPattern, dashPattern, equalsPattern} {
			m := pattern.FindStringSubmatch(line)
			if m == nil || len(m[1]) >= maxTermLength {
				continue
			}
			cards = append(cards, models.CardInput{
				Front: strings.TrimSpace(m[1]),
				Back:  strings.TrimSpace(m[2]),
			})
			break
		}

		if len(cards) == maxExtractedCards {
			break
		}
	}

	return cards
}
