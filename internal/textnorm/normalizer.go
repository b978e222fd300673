package textnorm

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"

	"sentiment/internal/domain"
)

// wordPattern matches maximal runs of word characters. Go's \w is ASCII only,
// so the Unicode classes are spelled out.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalizer lowercases, tokenizes, removes stopwords and stems text.
// A Normalizer is immutable once built and safe for concurrent use.
type Normalizer struct {
	stopwords map[string]struct{}
	stemmer   Stemmer
}

var _ domain.Normalizer = (*Normalizer)(nil)

// Option customizes a Normalizer.
type Option func(*Normalizer)

// WithStemmer replaces the default Porter stemmer.
func WithStemmer(s Stemmer) Option {
	return func(n *Normalizer) { n.stemmer = s }
}

// WithExtraStopwords adds words to the English stopword set.
func WithExtraStopwords(words ...string) Option {
	return func(n *Normalizer) {
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				n.stopwords[w] = struct{}{}
			}
		}
	}
}

// New builds a Normalizer over the English stopword set and Porter stemmer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		stopwords: EnglishStopwords(),
		stemmer:   PorterStemmer{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the cleaned form of text: stemmed, stopword-free tokens
// joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the cleaned tokens of text in order.
func (n *Normalizer) Tokens(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if n.IsStopword(t) {
			continue
		}
		out = append(out, n.stemmer.Stem(t))
	}
	return out
}

// IsStopword reports whether the lowercased token is filtered out.
func (n *Normalizer) IsStopword(token string) bool {
	_, ok := n.stopwords[token]
	return ok
}

// StemmerName returns the name of the configured stemmer.
func (n *Normalizer) StemmerName() string { return n.stemmer.Name() }

// Fingerprint identifies the normalization behavior: the stemmer name and the
// sorted stopword set. Normalizers with equal fingerprints clean text the same way.
func (n *Normalizer) Fingerprint() string {
	words := lo.Keys(n.stopwords)
	sort.Strings(words)
	return n.stemmer.Name() + "|" + strings.Join(words, ",")
}
