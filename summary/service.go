package summary

import (
	"context"
	"fmt"
	"time"

	"pmo-review-api/models"

	"go.uber.org/zap"
)

// ReviewSource lists every stored review, most recent first.
type ReviewSource interface {
	ListAll(ctx context.Context) ([]models.Review, error)
}

// Generator is the outbound generative-text endpoint.
type Generator interface {
	Configured() error
	Generate(ctx context.Context, prompt string) (string, error)
}

// Observer is notified once per Summarize call with the outcome, which is a
// Kind name or "error".
type Observer interface {
	ObserveSummary(scope, outcome string, elapsed time.Duration)
}

type Service struct {
	reviews ReviewSource
	gen     Generator
	log     *zap.Logger
	obs     Observer
}

func NewService(reviews ReviewSource, gen Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reviews: reviews, gen: gen, log: logger.Named("summary")}
}

// WithObserver sets the outcome observer and returns s.
func (s *Service) WithObserver(o Observer) *Service {
	s.obs = o
	return s
}

// Summarize runs the whole report flow for scope. The store is not read when
// the generator is unconfigured, and the generator is not called when there
// are no reviews. Model output that fails to decode is returned as a
// KindDegraded result, not an error.
func (s *Service) Summarize(ctx context.Context, scope Scope) (res *Result, err error) {
	started := time.Now()
	log := s.log.With(zap.String("scope", string(scope)))

	if !scope.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, string(scope))
	}
	if s.obs != nil {
		defer func() {
			outcome := "error"
			if err == nil {
				outcome = res.Kind.String()
			}
			s.obs.ObserveSummary(string(scope), outcome, time.Since(started))
		}()
	}
	return s.summarize(ctx, scope, log, started)
}

func (s *Service) summarize(ctx context.Context, scope Scope, log *zap.Logger, started time.Time) (*Result, error) {
	if err := s.gen.Configured(); err != nil {
		log.Error("summarizer not configured", zap.Error(err))
		return nil, err
	}

	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if len(reviews) == 0 {
		log.Warn("no reviews found")
		return NoDataResult(scope), nil
	}

	groups, err := Aggregate(reviews, scope)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildPrompt(scope, groups)
	if err != nil {
		return nil, err
	}
	log.Info("requesting summary",
		zap.Int("reviews", len(reviews)),
		zap.Int("groups", len(groups)),
		zap.Int("prompt_chars", len(prompt)),
	)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := Decode(scope, text)
	if result.Kind == KindDegraded {
		log.Warn("model returned invalid JSON", zap.Int("raw_chars", len(result.Raw)))
	}
	log.Info("summary generated", zap.Stringer("kind", result.Kind), zap.Duration("elapsed", time.Since(started)))
	return result, nil
}
