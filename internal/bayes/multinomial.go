package bayes

import (
	"fmt"
	"math"
	"sort"

	"sentiment/internal/domain"
)

// DefaultAlpha is the Laplace smoothing constant.
const DefaultAlpha = 1.0

// Model is a fitted multinomial naive Bayes classifier. Classes are kept in
// ascending label order and argmax ties go to the lowest class index.
type Model struct {
	classes        []domain.Label
	logPriors      []float64
	featureLogProb [][]float64
	dimension      int
}

// Fit trains a model on count vectors and their labels with smoothing alpha.
func Fit(vectors []domain.FeatureVector, labels []domain.Label, alpha float64) (*Model, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no training rows", domain.ErrConfiguration)
	}
	if len(vectors) != len(labels) {
		return nil, fmt.Errorf("%w: %d rows but %d labels", domain.ErrConfiguration, len(vectors), len(labels))
	}
	if !(alpha > 0) {
		return nil, fmt.Errorf("%w: smoothing alpha must be positive, got %v", domain.ErrConfiguration, alpha)
	}
	dim := len(vectors[0])

	classCount := make(map[domain.Label]int)
	featureCount := make(map[domain.Label][]float64)
	for i, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", domain.ErrConfiguration, i, len(vec), dim)
		}
		label := labels[i]
		classCount[label]++
		counts, ok := featureCount[label]
		if !ok {
			counts = make([]float64, dim)
			featureCount[label] = counts
		}
		for j, v := range vec {
			if v < 0 {
				return nil, fmt.Errorf("%w: row %d has negative count at column %d", domain.ErrConfiguration, i, j)
			}
			counts[j] += float64(v)
		}
	}

	classes := make([]domain.Label, 0, len(classCount))
	for c := range classCount {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	m := &Model{
		classes:        classes,
		logPriors:      make([]float64, len(classes)),
		featureLogProb: make([][]float64, len(classes)),
		dimension:      dim,
	}
	total := float64(len(vectors))
	for ci, c := range classes {
		m.logPriors[ci] = math.Log(float64(classCount[c]) / total)

		counts := featureCount[c]
		sum := 0.0
		for _, v := range counts {
			sum += v
		}
		denom := sum + alpha*float64(dim)
		probs := make([]float64, dim)
		for j, v := range counts {
			probs[j] = math.Log((v + alpha) / denom)
		}
		m.featureLogProb[ci] = probs
	}
	return m, nil
}

// Classes returns the trained classes in ascending order.
func (m *Model) Classes() []domain.Label {
	return append([]domain.Label(nil), m.classes...)
}

// Dimension returns the number of features the model was trained on.
func (m *Model) Dimension() int { return m.dimension }

// LogScores returns the joint log-likelihood of vec for each class, aligned
// with Classes().
func (m *Model) LogScores(vec domain.FeatureVector) ([]float64, error) {
	if len(vec) != m.dimension {
		return nil, fmt.Errorf("vector has %d columns, model expects %d", len(vec), m.dimension)
	}
	scores := make([]float64, len(m.classes))
	for ci := range m.classes {
		s := m.logPriors[ci]
		probs := m.featureLogProb[ci]
		for j, v := range vec {
			if v != 0 {
				s += float64(v) * probs[j]
			}
		}
		scores[ci] = s
	}
	return scores, nil
}

// Probabilities returns the posterior class probabilities of vec.
func (m *Model) Probabilities(vec domain.FeatureVector) ([]float64, error) {
	scores, err := m.LogScores(vec)
	if err != nil {
		return nil, err
	}
	norm := logSumExp(scores)
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = math.Exp(s - norm)
	}
	return out, nil
}

// Predict returns the most likely label for each vector.
func (m *Model) Predict(vectors []domain.FeatureVector) ([]domain.Label, error) {
	out := make([]domain.Label, len(vectors))
	for i, vec := range vectors {
		scores, err := m.LogScores(vec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = m.classes[argmax(scores)]
	}
	return out, nil
}

// argmax returns the first index holding the maximum.
func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

func logSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}
	hi := xs[argmax(xs)]
	if math.IsInf(hi, -1) {
		return hi
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Exp(x - hi)
	}
	return hi + math.Log(sum)
}
