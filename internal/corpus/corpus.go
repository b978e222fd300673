package corpus

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"sentiment/internal/domain"
)

// Seed returns a fresh copy of the built-in training examples.
// The labels are part of the behavior and are kept as written, including
// the mixed-sentiment sentences labeled neutral.
func Seed() []domain.SeedExample {
	return []domain.SeedExample{
		{Text: "CSNB.in provides best news for students", Label: domain.Positive},
		{Text: "It is a great platform to start off your CyberSecurityTips image", Label: domain.Positive},
		{Text: "Concepts are explained very well", Label: domain.Neutral},
		{Text: "The articles have some interesting stories", Label: domain.Neutral},
		{Text: "Some blogs are bad", Label: domain.Negative},
		{Text: "Their content can confuse students", Label: domain.Negative},
		{Text: "This Blog makes no sense", Label: domain.Negative},
		{Text: "Your knowledge of this domain is greatly presented", Label: domain.Positive},
		{Text: "Your tip did not work", Label: domain.Negative},
		{Text: "That is a good tip but only for a small scope", Label: domain.Neutral},
		{Text: "It's a good approach, could be more affordable.", Label: domain.Neutral},
	}
}

type file struct {
	Examples []domain.SeedExample `yaml:"examples"`
}

// Load reads a YAML corpus file and validates it.
func Load(path string) ([]domain.SeedExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	if err := Validate(f.Examples); err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return f.Examples, nil
}

// Validate checks that examples can train a classifier: at least one
// example, labels in range, and at least two distinct labels.
func Validate(examples []domain.SeedExample) error {
	if len(examples) == 0 {
		return fmt.Errorf("%w: seed corpus is empty", domain.ErrConfiguration)
	}
	for i, ex := range examples {
		if !ex.Label.Valid() {
			return fmt.Errorf("%w: example %d has invalid label %d", domain.ErrConfiguration, i, int(ex.Label))
		}
	}
	distinct := lo.Uniq(Labels(examples))
	if len(distinct) < 2 {
		return fmt.Errorf("%w: seed corpus has %d distinct label(s), need at least 2", domain.ErrConfiguration, len(distinct))
	}
	return nil
}

// Texts returns the example sentences in order.
func Texts(examples []domain.SeedExample) []string {
	return lo.Map(examples, func(ex domain.SeedExample, _ int) string { return ex.Text })
}

// Labels returns the example labels in order.
func Labels(examples []domain.SeedExample) []domain.Label {
	return lo.Map(examples, func(ex domain.SeedExample, _ int) domain.Label { return ex.Label })
}

// Fingerprint hashes the examples and any extra discriminators (fit
// options, stemmer name) into a stable hex key.
func Fingerprint(examples []domain.SeedExample, extra ...string) string {
	h := sha1.New()
	for _, ex := range examples {
		h.Write([]byte(strconv.Itoa(int(ex.Label))))
		h.Write([]byte{0})
		h.Write([]byte(ex.Text))
		h.Write([]byte{0})
	}
	for _, e := range extra {
		h.Write([]byte(e))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
