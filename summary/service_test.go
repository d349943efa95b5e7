package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pmo-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviews struct {
	reviews []models.Review
	err     error
	calls   int
}

func (f *fakeReviews) ListAll(context.Context) ([]models.Review, error) {
	f.calls++
	return f.reviews, f.err
}

type fakeGenerator struct {
	configErr error
	reply     string
	err       error
	prompts   []string
}

func (f *fakeGenerator) Configured() error { return f.configErr }

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func sampleReviews() []models.Review {
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	mk := func(zone string, status models.ReviewStatus) models.Review {
		return models.Review{ZoneName: zone, DepartmentName: "Kitchen", ReviewDate: day, Day: "Sunday", Venue: "Hall", Status: status}
	}
	return []models.Review{
		mk("North", models.ReviewStatusCompleted),
		mk("North", models.ReviewStatusDraft),
		mk("South", models.ReviewStatusCompleted),
	}
}

func TestSummarizeReturnsModelSummary(t *testing.T) {
	store := &fakeReviews{reviews: sampleReviews()}
	gen := &fakeGenerator{reply: "```json\n" + validSummary + "\n```"}

	res, err := NewService(store, gen, nil).Summarize(context.Background(), ScopeZone)
	require.NoError(t, err)
	assert.Equal(t, KindSummary, res.Kind)
	assert.Equal(t, ScopeZone, res.Scope)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, `"name":"North","totalReviews":2`)
	assert.Contains(t, prompt, `"name":"South","totalReviews":1`)
	assert.Less(t, strings.Index(prompt, `"North"`), strings.Index(prompt, `"South"`))
}

func TestSummarizeEmptyStoreSkipsModel(t *testing.T) {
	store := &fakeReviews{}
	gen := &fakeGenerator{}

	res, err := NewService(store, gen, nil).Summarize(context.Background(), ScopeDepartment)
	require.NoError(t, err)
	assert.Equal(t, KindNoData, res.Kind)
	assert.Empty(t, res.Summary.Groups)
	assert.Equal(t, []string{NoReviewsHighlight}, res.Summary.Highlights)
	assert.Empty(t, gen.prompts)
}

func TestSummarizeUnconfiguredSkipsStore(t *testing.T) {
	store := &fakeReviews{reviews: sampleReviews()}
	gen := &fakeGenerator{configErr: &ConfigurationError{Key: "GEMINI_API_KEY"}}

	_, err := NewService(store, gen, nil).Summarize(context.Background(), ScopeZone)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Zero(t, store.calls)
	assert.Empty(t, gen.prompts)
}

func TestSummarizeInvalidScopeTouchesNothing(t *testing.T) {
	store := &fakeReviews{reviews: sampleReviews()}
	gen := &fakeGenerator{configErr: &ConfigurationError{Key: "GEMINI_API_KEY"}}

	_, err := NewService(store, gen, nil).Summarize(context.Background(), Scope("venue"))
	assert.ErrorIs(t, err, ErrInvalidScope)
	assert.Zero(t, store.calls)
}

func TestSummarizeDegradesOnProse(t *testing.T) {
	store := &fakeReviews{reviews: sampleReviews()}
	gen := &fakeGenerator{reply: "North looked fine overall."}

	res, err := NewService(store, gen, nil).Summarize(context.Background(), ScopeZone)
	require.NoError(t, err)
	assert.Equal(t, KindDegraded, res.Kind)
	assert.Equal(t, "North looked fine overall.", res.Raw)
}

func TestSummarizePropagatesFailures(t *testing.T) {
	storeErr := errors.New("connection refused")
	_, err := NewService(&fakeReviews{err: storeErr}, &fakeGenerator{}, nil).Summarize(context.Background(), ScopeZone)
	assert.ErrorIs(t, err, storeErr)

	ext := &ExternalServiceError{StatusCode: 503, Message: "overloaded"}
	gen := &fakeGenerator{err: ext}
	_, err = NewService(&fakeReviews{reviews: sampleReviews()}, gen, nil).Summarize(context.Background(), ScopeZone)
	var got *ExternalServiceError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 503, got.StatusCode)
	assert.Len(t, gen.prompts, 1)
}

type outcome struct{ scope, kind string }

type fakeObserver struct{ seen []outcome }

func (f *fakeObserver) ObserveSummary(scope, kind string, _ time.Duration) {
	f.seen = append(f.seen, outcome{scope, kind})
}

func TestSummarizeReportsOutcome(t *testing.T) {
	obs := &fakeObserver{}
	svc := NewService(&fakeReviews{}, &fakeGenerator{}, nil).WithObserver(obs)
	_, err := svc.Summarize(context.Background(), ScopeZone)
	require.NoError(t, err)

	failing := NewService(&fakeReviews{}, &fakeGenerator{configErr: &ConfigurationError{Key: "GEMINI_API_KEY"}}, nil).WithObserver(obs)
	_, err = failing.Summarize(context.Background(), ScopeDepartment)
	require.Error(t, err)

	assert.Equal(t, []outcome{{"zone", "no_data"}, {"department", "error"}}, obs.seen)
}
