package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks a broken build of the classifier (bad seed corpus,
// empty vocabulary, invalid options). It is never caused by user comments.
var ErrConfiguration = errors.New("configuration error")

// Label is a sentiment class.
type Label int

const (
	Negative Label = -1
	Neutral  Label = 0
	Positive Label = 1
)

// Labels lists every valid label in ascending order.
var Labels = []Label{Negative, Neutral, Positive}

// Valid reports whether l is one of the three sentiment classes.
func (l Label) Valid() bool {
	return l == Negative || l == Neutral || l == Positive
}

func (l Label) String() string {
	switch l {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// ParseLabel accepts either the display name or the integer form.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "negative", "-1":
		return Negative, nil
	case "neutral", "0":
		return Neutral, nil
	case "positive", "1", "+1":
		return Positive, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return 0, fmt.Errorf("label %d out of range", n)
	}
	return 0, fmt.Errorf("unknown label %q", s)
}

// UnmarshalYAML accepts labels written as integers or display names.
func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseLabel(value.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// SeedExample is one labeled training sentence.
type SeedExample struct {
	Text  string `yaml:"text"`
	Label Label  `yaml:"label"`
}

// FeatureVector holds n-gram counts, one column per vocabulary entry.
type FeatureVector []int

// Prediction is the classification of a single comment.
type Prediction struct {
	Comment    string
	Label      Label
	Confidence float64
}

// Normalizer turns raw comment text into cleaned text.
type Normalizer interface {
	Normalize(text string) string
	Tokens(text string) []string
}

// Vectorizer maps cleaned text onto a vocabulary fitted from a corpus.
// Implementations require a fit phase before transforming.
type Vectorizer interface {
	Fit(corpus []string) []string
	Transform(texts []string) []FeatureVector
	Vocabulary() []string
}

// Classifier predicts sentiment labels for comments.
type Classifier interface {
	Classify(comments []string) ([]Label, error)
	Analyze(comments []string) ([]Prediction, error)
}
