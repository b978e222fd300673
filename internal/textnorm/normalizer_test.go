package textnorm

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty string", input: "", expected: ""},
		{name: "Only punctuation", input: "!!! ... ,,, ???", expected: ""},
		{name: "Only stopwords", input: "The and of IS a", expected: ""},
		{name: "Stopwords removed", input: "the quick and the dead", expected: "quick dead"},
		{name: "Stemming", input: "Running", expected: "run"},
		{name: "Punctuation splits tokens", input: "CSNB.in rocks", expected: "csnb rock"},
		{name: "Underscore and digits are word characters", input: "user_id 42", expected: "user_id 42"},
		{name: "Whitespace collapsed", input: "  quick \t\n  dead  ", expected: "quick dead"},
		{name: "Contraction split leaves stopwords", input: "It's good", expected: "good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Deterministic(t *testing.T) {
	req := require.New(t)
	n := New()
	inputs := []string{
		"Your knowledge of this domain is greatly presented",
		"great tip, very useful",
		"ÉTÉ Ünïcode Wörds",
		"",
	}
	for _, in := range inputs {
		req.Equal(n.Normalize(in), n.Normalize(in))
		req.Equal(n.Normalize(in), n.Normalize(strings.ToUpper(in)))
	}
}

func TestNormalizer_NoLeadingOrTrailingSpace(t *testing.T) {
	req := require.New(t)
	out := New().Normalize("  ...the presented, stories!  ")
	req.Equal(strings.TrimSpace(out), out)
	req.NotContains(out, "  ")
}

func TestNormalizer_UnicodeLetters(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"café"}, New(WithStemmer(identity{})).Tokens("Café!"))
}

func TestNormalizer_ExtraStopwords(t *testing.T) {
	req := require.New(t)
	n := New(WithExtraStopwords(" Blog ", ""))
	req.True(n.IsStopword("blog"))
	req.Equal("bad", n.Normalize("blog bad"))
}

func TestNormalizer_Fingerprint(t *testing.T) {
	req := require.New(t)
	req.Equal(New().Fingerprint(), New().Fingerprint())
	req.Equal(New(WithExtraStopwords("blog")).Fingerprint(), New(WithExtraStopwords("Blog ")).Fingerprint())
	req.NotEqual(New().Fingerprint(), New(WithExtraStopwords("blog")).Fingerprint())
	req.NotEqual(New().Fingerprint(), New(WithStemmer(SnowballStemmer{})).Fingerprint())
}

func TestNormalizer_ConcurrentUse(t *testing.T) {
	req := require.New(t)
	n := New()
	want := n.Normalize("The articles have some interesting stories")

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = n.Normalize("The articles have some interesting stories")
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		req.Equal(want, got)
	}
}

func TestNewStemmer(t *testing.T) {
	req := require.New(t)

	s, err := NewStemmer("")
	req.NoError(err)
	req.Equal("porter", s.Name())

	s, err = NewStemmer("snowball")
	req.NoError(err)
	req.Equal("snowball", s.Name())
	req.Equal("run", s.Stem("running"))
	req.Equal("having", s.Stem("having"))

	_, err = NewStemmer("lancaster")
	req.Error(err)
}

func TestEnglishStopwords(t *testing.T) {
	req := require.New(t)
	words := EnglishStopwords()
	req.Len(words, 179)
	for _, w := range []string{"the", "is", "a", "and", "your", "s", "not", "only"} {
		req.Contains(words, w)
	}
	// fresh copy per call
	delete(words, "the")
	req.Contains(EnglishStopwords(), "the")
}

type identity struct{}

func (identity) Name() string             { return "identity" }
func (identity) Stem(token string) string { return token }
