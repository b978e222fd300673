package vectorizer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"sentiment/internal/domain"
)

// Options configures n-gram extraction.
type Options struct {
	NGramMin       int
	NGramMax       int
	MinTokenLength int
}

// DefaultOptions extracts unigrams and bigrams over every token.
func DefaultOptions() Options {
	return Options{NGramMin: 1, NGramMax: 2, MinTokenLength: 1}
}

// Validate rejects n-gram ranges that cannot produce features.
func (o Options) Validate() error {
	if o.NGramMin < 1 || o.NGramMax < o.NGramMin {
		return fmt.Errorf("%w: invalid n-gram range (%d, %d)", domain.ErrConfiguration, o.NGramMin, o.NGramMax)
	}
	if o.MinTokenLength < 0 {
		return fmt.Errorf("%w: negative minimum token length", domain.ErrConfiguration)
	}
	return nil
}

// Counter is a bag-of-n-grams count vectorizer. Fit freezes the vocabulary;
// Transform maps texts onto its columns and ignores unseen n-grams.
type Counter struct {
	opts       Options
	vocabulary map[string]int
	terms      []string
}

var _ domain.Vectorizer = (*Counter)(nil)

// New creates an unfitted Counter.
func New(opts Options) (*Counter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Counter{opts: opts, vocabulary: map[string]int{}}, nil
}

// Fit builds the vocabulary from corpus and returns it in column order.
// Columns are sorted lexicographically.
func (c *Counter) Fit(corpus []string) []string {
	seen := make(map[string]struct{})
	for _, text := range corpus {
		for _, g := range c.ngrams(text) {
			seen[g] = struct{}{}
		}
	}
	terms := lo.Keys(seen)
	sort.Strings(terms)
	c.terms = terms
	c.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		c.vocabulary[term] = i
	}
	return c.Vocabulary()
}

// Transform counts vocabulary n-grams in each text. Every vector has
// exactly Dimension() columns.
func (c *Counter) Transform(texts []string) []domain.FeatureVector {
	out := make([]domain.FeatureVector, len(texts))
	for i, text := range texts {
		vec := make(domain.FeatureVector, len(c.terms))
		if len(c.terms) > 0 {
			for _, g := range c.ngrams(text) {
				if idx, ok := c.vocabulary[g]; ok {
					vec[idx]++
				}
			}
		}
		out[i] = vec
	}
	return out
}

// FitTransform fits on corpus and returns its vectors.
func (c *Counter) FitTransform(corpus []string) []domain.FeatureVector {
	c.Fit(corpus)
	return c.Transform(corpus)
}

// Vocabulary returns a copy of the fitted n-grams in column order.
func (c *Counter) Vocabulary() []string {
	return append([]string(nil), c.terms...)
}

// Dimension returns the number of columns produced by Transform.
func (c *Counter) Dimension() int { return len(c.terms) }

// Index returns the column of an n-gram.
func (c *Counter) Index(ngram string) (int, bool) {
	idx, ok := c.vocabulary[ngram]
	return idx, ok
}

func (c *Counter) ngrams(text string) []string {
	tokens := lo.Filter(strings.Fields(text), func(t string, _ int) bool {
		return utf8.RuneCountInString(t) >= c.opts.MinTokenLength
	})
	var out []string
	for n := c.opts.NGramMin; n <= c.opts.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
