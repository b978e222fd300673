package textnorm

import (
	"fmt"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/kljensen/snowball"
)

// Stemmer maps a lowercase token onto its root form.
type Stemmer interface {
	Name() string
	Stem(token string) string
}

// PorterStemmer applies the classic Porter suffix-stripping algorithm.
type PorterStemmer struct{}

func (PorterStemmer) Name() string { return "porter" }

func (PorterStemmer) Stem(token string) string {
	return porterstemmer.StemString(token)
}

// SnowballStemmer applies the English Snowball (Porter2) algorithm.
type SnowballStemmer struct{}

func (SnowballStemmer) Name() string { return "snowball" }

func (SnowballStemmer) Stem(token string) string {
	stemmed, err := snowball.Stem(token, "english", false)
	if err != nil {
		return token
	}
	return stemmed
}

// NewStemmer returns the stemmer registered under name. An empty name
// selects Porter.
func NewStemmer(name string) (Stemmer, error) {
	switch name {
	case "porter", "":
		return PorterStemmer{}, nil
	case "snowball":
		return SnowballStemmer{}, nil
	default:
		return nil, fmt.Errorf("unknown stemmer: %s", name)
	}
}
