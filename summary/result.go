package summary

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	// InvalidJSONMessage is the error text of a degraded result.
	InvalidJSONMessage = "Invalid JSON from model"
	// NoReviewsHighlight is the only highlight of a report over an empty store.
	NoReviewsHighlight = "No reviews found in the database"
)

type Metrics struct {
	TotalReviews int `json:"totalReviews" validate:"min=0"`
	Completed    int `json:"completed" validate:"min=0"`
	Draft        int `json:"draft" validate:"min=0"`
}

// UnmarshalJSON accepts counts written as whole-number floats ("2.0"), which
// models emit often enough. Fractional counts are rejected.
func (m *Metrics) UnmarshalJSON(b []byte) error {
	var raw struct {
		TotalReviews json.Number `json:"totalReviews"`
		Completed    json.Number `json:"completed"`
		Draft        json.Number `json:"draft"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var err error
	if m.TotalReviews, err = wholeCount("totalReviews", raw.TotalReviews); err != nil {
		return err
	}
	if m.Completed, err = wholeCount("completed", raw.Completed); err != nil {
		return err
	}
	m.Draft, err = wholeCount("draft", raw.Draft)
	return err
}

func wholeCount(field string, n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("metrics.%s: %q is not a whole number", field, n.String())
	}
	return int(f), nil
}

type GroupSummary struct {
	Name        string   `json:"name" validate:"required"`
	Metrics     Metrics  `json:"metrics"`
	KeyThemes   []string `json:"keyThemes"`
	Issues      []string `json:"issues"`
	ActionItems []string `json:"actionItems"`
}

// Summary is the structured report the model is asked to return.
type Summary struct {
	Scope      Scope          `json:"scope" validate:"omitempty,oneof=zone department"`
	Groups     []GroupSummary `json:"groups" validate:"dive"`
	Highlights []string       `json:"highlights"`
}

type Kind int

const (
	// KindSummary carries a model summary that parsed and validated.
	KindSummary Kind = iota
	// KindNoData is the short-circuit result when there are no reviews.
	KindNoData
	// KindDegraded carries the cleaned model text that could not be decoded.
	KindDegraded
)

func (k Kind) String() string {
	switch k {
	case KindSummary:
		return "summary"
	case KindNoData:
		return "no_data"
	case KindDegraded:
		return "degraded"
	}
	return "unknown"
}

// Result is the outcome of one summarization request. Summary is set for
// KindSummary and KindNoData; Raw is set for KindDegraded.
type Result struct {
	Kind    Kind
	Scope   Scope
	Summary *Summary
	Raw     string
}

type degradedPayload struct {
	Scope Scope  `json:"scope"`
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// MarshalJSON emits {scope, groups, highlights} for summaries and
// {scope, error, raw} for degraded results.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Kind == KindDegraded || r.Summary == nil {
		return json.Marshal(degradedPayload{Scope: r.Scope, Error: InvalidJSONMessage, Raw: r.Raw})
	}
	return json.Marshal(r.Summary)
}

// UnmarshalJSON accepts either payload shape, so an exported report can be
// posted back for rendering.
func (r *Result) UnmarshalJSON(data []byte) error {
	var probe struct {
		Scope Scope   `json:"scope"`
		Error *string `json:"error"`
		Raw   *string `json:"raw"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != nil || probe.Raw != nil {
		raw := ""
		if probe.Raw != nil {
			raw = *probe.Raw
		}
		*r = Result{Kind: KindDegraded, Scope: probe.Scope, Raw: raw}
		return nil
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s.normalize(s.Scope)
	*r = Result{Kind: KindSummary, Scope: s.Scope, Summary: &s}
	return nil
}

// NoDataResult is returned without calling the model when there is nothing
// to summarize.
func NoDataResult(scope Scope) *Result {
	return &Result{
		Kind:  KindNoData,
		Scope: scope,
		Summary: &Summary{
			Scope:      scope,
			Groups:     []GroupSummary{},
			Highlights: []string{NoReviewsHighlight},
		},
	}
}

// StripFences removes a surrounding markdown code fence, tagged "json" or
// bare. Text that is not fenced is only trimmed.
func StripFences(text string) string {
	clean := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(clean, "```json"):
		clean = strings.TrimPrefix(clean, "```json")
	case strings.HasPrefix(clean, "```"):
		clean = strings.TrimPrefix(clean, "```")
	default:
		return clean
	}
	clean = strings.TrimLeftFunc(clean, unicode.IsSpace)
	clean = strings.TrimRightFunc(clean, unicode.IsSpace)
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimRightFunc(clean, unicode.IsSpace)
}

var validate = validator.New()

// Decode parses model text into a Result. It never fails: anything that is
// not a JSON object matching Summary becomes a degraded result holding the
// cleaned text.
func Decode(scope Scope, text string) *Result {
	clean := StripFences(text)
	degraded := &Result{Kind: KindDegraded, Scope: scope, Raw: clean}

	if !strings.HasPrefix(clean, "{") {
		return degraded
	}
	var s Summary
	if err := json.Unmarshal([]byte(clean), &s); err != nil {
		return degraded
	}
	if err := validate.Struct(s); err != nil {
		return degraded
	}

	s.normalize(scope)
	return &Result{Kind: KindSummary, Scope: s.Scope, Summary: &s}
}

func (s *Summary) normalize(scope Scope) {
	if s.Scope == "" {
		s.Scope = scope
	}
	if s.Groups == nil {
		s.Groups = []GroupSummary{}
	}
	if s.Highlights == nil {
		s.Highlights = []string{}
	}
	for i := range s.Groups {
		g := &s.Groups[i]
		if g.KeyThemes == nil {
			g.KeyThemes = []string{}
		}
		if g.Issues == nil {
			g.Issues = []string{}
		}
		if g.ActionItems == nil {
			g.ActionItems = []string{}
		}
	}
}
