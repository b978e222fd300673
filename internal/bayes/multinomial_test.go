package bayes

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"sentiment/internal/domain"
)

func symmetricModel(t *testing.T) *Model {
	t.Helper()
	m, err := Fit(
		[]domain.FeatureVector{{2, 0}, {0, 2}},
		[]domain.Label{domain.Positive, domain.Negative},
		DefaultAlpha,
	)
	require.NoError(t, err)
	return m
}

func TestFit_SmoothedParameters(t *testing.T) {
	req := require.New(t)
	m := symmetricModel(t)

	req.Equal([]domain.Label{domain.Negative, domain.Positive}, m.Classes())
	req.Equal(2, m.Dimension())
	req.InDelta(math.Log(0.5), m.logPriors[0], 1e-12)
	req.InDelta(math.Log(0.5), m.logPriors[1], 1e-12)
	// (count + 1) / (class total + 1*|V|)
	req.InDelta(math.Log(1.0/4), m.featureLogProb[0][0], 1e-12)
	req.InDelta(math.Log(3.0/4), m.featureLogProb[0][1], 1e-12)
	req.InDelta(math.Log(3.0/4), m.featureLogProb[1][0], 1e-12)
	req.InDelta(math.Log(1.0/4), m.featureLogProb[1][1], 1e-12)
}

func TestFit_PriorsFollowClassFrequency(t *testing.T) {
	req := require.New(t)
	m, err := Fit(
		[]domain.FeatureVector{{1}, {1}, {1}, {1}},
		[]domain.Label{domain.Neutral, domain.Neutral, domain.Neutral, domain.Positive},
		1,
	)
	req.NoError(err)
	req.InDelta(math.Log(0.75), m.logPriors[0], 1e-12)
	req.InDelta(math.Log(0.25), m.logPriors[1], 1e-12)
}

func TestPredict(t *testing.T) {
	m := symmetricModel(t)

	tests := []struct {
		name     string
		vector   domain.FeatureVector
		expected domain.Label
	}{
		{name: "First feature favors positive", vector: domain.FeatureVector{1, 0}, expected: domain.Positive},
		{name: "Second feature favors negative", vector: domain.FeatureVector{0, 3}, expected: domain.Negative},
		{name: "All-zero vector ties, lowest class wins", vector: domain.FeatureVector{0, 0}, expected: domain.Negative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := m.Predict([]domain.FeatureVector{tt.vector})
			req.NoError(err)
			req.Equal([]domain.Label{tt.expected}, got)
		})
	}
}

func TestPredict_PreservesOrder(t *testing.T) {
	req := require.New(t)
	m := symmetricModel(t)
	got, err := m.Predict([]domain.FeatureVector{{1, 0}, {0, 1}, {4, 0}})
	req.NoError(err)
	req.Equal([]domain.Label{domain.Positive, domain.Negative, domain.Positive}, got)

	got, err = m.Predict(nil)
	req.NoError(err)
	req.Empty(got)
}

func TestPredict_WidthMismatch(t *testing.T) {
	req := require.New(t)
	m := symmetricModel(t)
	_, err := m.Predict([]domain.FeatureVector{{1, 0, 0}})
	req.Error(err)
}

func TestProbabilities(t *testing.T) {
	req := require.New(t)
	m := symmetricModel(t)
	probs, err := m.Probabilities(domain.FeatureVector{1, 0})
	req.NoError(err)
	req.InDelta(0.25, probs[0], 1e-12)
	req.InDelta(0.75, probs[1], 1e-12)

	probs, err = m.Probabilities(domain.FeatureVector{200, 0})
	req.NoError(err)
	req.InDelta(1.0, probs[0]+probs[1], 1e-9)
	req.False(math.IsNaN(probs[0]))
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		vectors []domain.FeatureVector
		labels  []domain.Label
		alpha   float64
	}{
		{name: "No rows", vectors: nil, labels: nil, alpha: 1},
		{name: "Label count mismatch", vectors: []domain.FeatureVector{{1}}, labels: nil, alpha: 1},
		{name: "Ragged rows", vectors: []domain.FeatureVector{{1, 0}, {1}}, labels: []domain.Label{1, -1}, alpha: 1},
		{name: "Negative count", vectors: []domain.FeatureVector{{-1}}, labels: []domain.Label{1}, alpha: 1},
		{name: "Zero alpha", vectors: []domain.FeatureVector{{1}}, labels: []domain.Label{1}, alpha: 0},
		{name: "NaN alpha", vectors: []domain.FeatureVector{{1}}, labels: []domain.Label{1}, alpha: math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Fit(tt.vectors, tt.labels, tt.alpha)
			req.Error(err)
			req.True(errors.Is(err, domain.ErrConfiguration))
		})
	}
}

func TestFit_AbsentClassExcluded(t *testing.T) {
	req := require.New(t)
	m, err := Fit(
		[]domain.FeatureVector{{1, 0}, {0, 1}},
		[]domain.Label{domain.Neutral, domain.Positive},
		1,
	)
	req.NoError(err)
	req.Equal([]domain.Label{domain.Neutral, domain.Positive}, m.Classes())
	got, err := m.Predict([]domain.FeatureVector{{0, 0}})
	req.NoError(err)
	req.Equal(domain.Neutral, got[0])
}
