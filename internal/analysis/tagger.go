// Package analysis annotates budget line items with domain entity tags
// (materials, standards references) and raises rule-based technical alerts.
package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/obras-dev/presupuestos/constants"
	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/entity"
)

// Tagger finds labeled spans in a description. The analyzer only depends
// on this contract, so the rule-based tagger can be swapped for a model
// backend without touching the aggregation logic.
type Tagger interface {
	Tag(text string) []entity.Span
}

// reParameter recognizes an electrical parameter token, e.g. "4x25A" or
// "2x16". The trailing letter is optional.
var reParameter = regexp.MustCompile(`(?i)\b\d+x\d+[a-z]?\b`)

// RuleTagger matches the configured vocabularies against description
// text. Material terms are single tokens compared by Spanish stem, with
// diacritics folded, so "Cables" still counts toward "cable". Normativa
// terms match as case-insensitive whole words and keep the document
// spelling. Not safe for concurrent use.
type RuleTagger struct {
	materials  []materialTerm
	normativas []*regexp.Regexp
	folder     transform.Transformer
}

type materialTerm struct {
	term string // canonical lowercase vocabulary term
	stem string
}

func NewRuleTagger(cfg common.AnalysisConfig) *RuleTagger {
	t := &RuleTagger{
		folder: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
	for _, m := range cfg.Materials {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		term := strings.ToLower(m)
		t.materials = append(t.materials, materialTerm{term: term, stem: t.stem(term)})
	}
	for _, n := range cfg.Normativas {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		t.normativas = append(t.normativas, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(n)+`\b`))
	}
	return t
}

// Tag reports every material occurrence (one span per token), every
// normativa mention and every parameter token found in text.
func (t *RuleTagger) Tag(text string) []entity.Span {
	var spans []entity.Span

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		stem := t.stem(strings.ToLower(tok))
		for _, m := range t.materials {
			if stem == m.stem {
				spans = append(spans, entity.Span{Text: m.term, Label: constants.LabelMaterial})
				break
			}
		}
	}

	for _, re := range t.normativas {
		for _, hit := range re.FindAllString(text, -1) {
			spans = append(spans, entity.Span{Text: hit, Label: constants.LabelNormativa})
		}
	}

	for _, hit := range reParameter.FindAllString(text, -1) {
		spans = append(spans, entity.Span{Text: hit, Label: constants.LabelParametro})
	}
	return spans
}

// stem folds diacritics and reduces the word to its Spanish stem. On
// stemmer failure the folded word itself is the stem.
func (t *RuleTagger) stem(word string) string {
	folded, _, err := transform.String(t.folder, word)
	if err != nil {
		folded = word
	}
	stemmed, err := snowball.Stem(folded, "spanish", true)
	if err != nil {
		return folded
	}
	return stemmed
}
