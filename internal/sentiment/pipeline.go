package sentiment

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/samber/lo"

	"sentiment/internal/bayes"
	"sentiment/internal/corpus"
	"sentiment/internal/domain"
	"sentiment/internal/modelcache"
	"sentiment/internal/textnorm"
	"sentiment/internal/vectorizer"
)

// Config holds the fixed resources and fit parameters of a Pipeline.
type Config struct {
	// Corpus returns the training examples. It is called on every fit so the
	// seed set is declared fresh each time; nil selects corpus.Seed.
	Corpus     func() []domain.SeedExample
	Normalizer *textnorm.Normalizer
	Vectorizer vectorizer.Options
	Alpha      float64
	// Cache, when set, reuses fitted state across calls. Predictions are the
	// same as without it.
	Cache *modelcache.Store
}

// Pipeline cleans comments, vectorizes them against the seed vocabulary and
// predicts their sentiment. A Pipeline holds no per-call state.
type Pipeline struct {
	corpus     func() []domain.SeedExample
	normalizer *textnorm.Normalizer
	vecOpts    vectorizer.Options
	alpha      float64
	cache      *modelcache.Store
	log        *slog.Logger
}

var _ domain.Classifier = (*Pipeline)(nil)

// NewPipeline validates cfg and builds a Pipeline. The corpus is checked once
// here and again on every fit.
func NewPipeline(cfg Config, log *slog.Logger) (*Pipeline, error) {
	if cfg.Corpus == nil {
		cfg.Corpus = corpus.Seed
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = textnorm.New()
	}
	if cfg.Vectorizer == (vectorizer.Options{}) {
		cfg.Vectorizer = vectorizer.DefaultOptions()
	}
	if err := cfg.Vectorizer.Validate(); err != nil {
		return nil, err
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = bayes.DefaultAlpha
	}
	if !(cfg.Alpha > 0) {
		return nil, fmt.Errorf("%w: smoothing alpha must be positive, got %v", domain.ErrConfiguration, cfg.Alpha)
	}
	if err := corpus.Validate(cfg.Corpus()); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		corpus:     cfg.Corpus,
		normalizer: cfg.Normalizer,
		vecOpts:    cfg.Vectorizer,
		alpha:      cfg.Alpha,
		cache:      cfg.Cache,
		log:        log,
	}, nil
}

// Classify returns one label per comment, in input order.
func (p *Pipeline) Classify(comments []string) ([]domain.Label, error) {
	if len(comments) == 0 {
		return []domain.Label{}, nil
	}
	fitted, err := p.fit()
	if err != nil {
		return nil, err
	}
	vectors, err := p.vectorize(fitted, comments)
	if err != nil {
		return nil, err
	}
	return fitted.Model.Predict(vectors)
}

// Analyze classifies comments and reports the posterior probability of each
// chosen label.
func (p *Pipeline) Analyze(comments []string) ([]domain.Prediction, error) {
	if len(comments) == 0 {
		return []domain.Prediction{}, nil
	}
	fitted, err := p.fit()
	if err != nil {
		return nil, err
	}
	vectors, err := p.vectorize(fitted, comments)
	if err != nil {
		return nil, err
	}
	labels, err := fitted.Model.Predict(vectors)
	if err != nil {
		return nil, err
	}
	classes := fitted.Model.Classes()
	out := make([]domain.Prediction, len(comments))
	for i, comment := range comments {
		probs, err := fitted.Model.Probabilities(vectors[i])
		if err != nil {
			return nil, err
		}
		out[i] = domain.Prediction{
			Comment:    comment,
			Label:      labels[i],
			Confidence: probs[lo.IndexOf(classes, labels[i])],
		}
	}
	return out, nil
}

// Normalizer exposes the text normalizer used for training and inference.
func (p *Pipeline) Normalizer() *textnorm.Normalizer { return p.normalizer }

// Describe summarizes the training setup without fitting a model.
func (p *Pipeline) Describe() string {
	examples := p.corpus()
	return fmt.Sprintf("%d seed examples, %d classes, %s stemmer, %d-%d grams",
		len(examples), len(lo.Uniq(corpus.Labels(examples))), p.normalizer.StemmerName(),
		p.vecOpts.NGramMin, p.vecOpts.NGramMax)
}

func (p *Pipeline) vectorize(fitted modelcache.Entry, comments []string) ([]domain.FeatureVector, error) {
	if fitted.Vectorizer.Dimension() == 0 {
		return nil, fmt.Errorf("%w: seed corpus produced an empty vocabulary", domain.ErrConfiguration)
	}
	cleaned := lo.Map(comments, func(c string, _ int) string { return p.normalizer.Normalize(c) })
	return fitted.Vectorizer.Transform(cleaned), nil
}

// fit trains a vectorizer and model on the seed corpus, or returns the
// cached pair when a cache is configured.
func (p *Pipeline) fit() (modelcache.Entry, error) {
	examples := p.corpus()
	if err := corpus.Validate(examples); err != nil {
		return modelcache.Entry{}, err
	}

	var key string
	if p.cache != nil {
		key = corpus.Fingerprint(examples, p.normalizer.Fingerprint(),
			strconv.Itoa(p.vecOpts.NGramMin), strconv.Itoa(p.vecOpts.NGramMax),
			strconv.Itoa(p.vecOpts.MinTokenLength), strconv.FormatFloat(p.alpha, 'g', -1, 64))
		if e, ok := p.cache.Get(key); ok {
			p.log.Debug("Model cache hit", "key", key)
			return e, nil
		}
	}

	cleaned := lo.Map(corpus.Texts(examples), func(t string, _ int) string { return p.normalizer.Normalize(t) })
	vec, err := vectorizer.New(p.vecOpts)
	if err != nil {
		return modelcache.Entry{}, err
	}
	rows := vec.FitTransform(cleaned)
	model, err := bayes.Fit(rows, corpus.Labels(examples), p.alpha)
	if err != nil {
		return modelcache.Entry{}, err
	}
	p.log.Debug("Fitted sentiment model",
		"examples", len(examples), "features", vec.Dimension(), "classes", len(model.Classes()))

	entry := modelcache.Entry{Vectorizer: vec, Model: model}
	if p.cache != nil {
		if err := p.cache.Put(key, entry); err != nil {
			return modelcache.Entry{}, err
		}
	}
	return entry, nil
}
