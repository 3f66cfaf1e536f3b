package memory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Weights loosely follow the Mongo text index: name counts more than description.
const (
	nameTokenWeight   = 2.0
	descTokenWeight   = 1.0
	namePhraseBonus   = 3.0
	descPhraseBonus   = 1.5
	minPhraseTokenLen = 2
)

var textFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

type textQuery struct {
	tokens []string
	phrase string
}

func newTextQuery(raw string) textQuery {
	tokens := tokenize(raw)
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return textQuery{tokens: unique, phrase: strings.Join(tokens, " ")}
}

// score is token overlap weighted by field, plus a bonus per field containing
// the whole query as a phrase. A phrase match implies every token matched, so
// it always outranks a partial match on the same fields.
func (q textQuery) score(store domain.Store) float64 {
	if len(q.tokens) == 0 {
		return 0
	}
	nameTokens := tokenize(store.Name)
	descTokens := tokenize(store.Description)
	nameSet := toSet(nameTokens)
	descSet := toSet(descTokens)

	var score float64
	for _, t := range q.tokens {
		if _, ok := nameSet[t]; ok {
			score += nameTokenWeight
		}
		if _, ok := descSet[t]; ok {
			score += descTokenWeight
		}
	}
	if score == 0 {
		return 0
	}

	if len(q.tokens) >= minPhraseTokenLen {
		n := float64(len(q.tokens))
		if containsPhrase(nameTokens, q.phrase) {
			score += namePhraseBonus * n
		}
		if containsPhrase(descTokens, q.phrase) {
			score += descPhraseBonus * n
		}
	}
	return score
}

func tokenize(text string) []string {
	folded, _, err := transform.String(textFolder, text)
	if err != nil {
		folded = text
	}
	return strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func containsPhrase(tokens []string, phrase string) bool {
	// pad so "ab c" does not match inside "xab c"
	return strings.Contains(" "+strings.Join(tokens, " ")+" ", " "+phrase+" ")
}
