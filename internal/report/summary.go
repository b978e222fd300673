package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"sentiment/internal/domain"
)

// Summary describes a classified batch of comments.
type Summary struct {
	Total    int
	Counts   map[domain.Label]int
	Dominant domain.Label
	// TopTerms holds the most frequent cleaned terms per label.
	TopTerms map[domain.Label][]string
}

// TokenFunc returns the cleaned tokens of a comment.
type TokenFunc func(text string) []string

// Summarize counts labels and ranks cleaned terms per label by frequency.
// Ties in the dominant label go to the lowest label; ties in term rank are
// broken alphabetically.
func Summarize(predictions []domain.Prediction, tokens TokenFunc, topN int) Summary {
	if topN <= 0 {
		topN = 3
	}
	s := Summary{
		Total:    len(predictions),
		Counts:   make(map[domain.Label]int, len(domain.Labels)),
		TopTerms: make(map[domain.Label][]string),
		Dominant: domain.Neutral,
	}
	freq := make(map[domain.Label]map[string]int)
	for _, p := range predictions {
		s.Counts[p.Label]++
		if tokens == nil {
			continue
		}
		if freq[p.Label] == nil {
			freq[p.Label] = make(map[string]int)
		}
		for _, tok := range tokens(p.Comment) {
			freq[p.Label][tok]++
		}
	}
	if s.Total > 0 {
		best := -1
		for _, l := range domain.Labels {
			if s.Counts[l] > best {
				best = s.Counts[l]
				s.Dominant = l
			}
		}
	}
	for label, terms := range freq {
		s.TopTerms[label] = rank(terms, topN)
	}
	return s
}

func rank(freq map[string]int, topN int) []string {
	terms := lo.Keys(freq)
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if topN > len(terms) {
		topN = len(terms)
	}
	return terms[:topN]
}

// String renders the label distribution on one line.
func (s Summary) String() string {
	if s.Total == 0 {
		return "no comments"
	}
	parts := lo.Map(domain.Labels, func(l domain.Label, _ int) string {
		return fmt.Sprintf("%s %d", l, s.Counts[l])
	})
	return fmt.Sprintf("%d comments: %s (mostly %s)", s.Total, strings.Join(parts, ", "), s.Dominant)
}
