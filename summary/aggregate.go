// Package summary turns stored reviews into a Gemini-generated PMO report.
package summary

import (
	"fmt"

	"pmo-review-api/models"
	"pmo-review-api/utils"
)

type Scope string

const (
	ScopeZone       Scope = "zone"
	ScopeDepartment Scope = "department"
)

// Limits on the projection sent to the model. They bound prompt size only.
const (
	maxNotesLength  = 1000
	maxAnswerLength = 500
	maxAnswers      = 3
)

func (s Scope) Valid() bool {
	return s == ScopeZone || s == ScopeDepartment
}

// ParseScope accepts exactly "zone" or "department".
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if !scope.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
	return scope, nil
}

// Item is the trimmed projection of one review.
type Item struct {
	Day          string   `json:"day"`
	Date         string   `json:"date"`
	Venue        string   `json:"venue"`
	ReviewerName string   `json:"reviewerName"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
	Answers      []string `json:"answers"`
}

// Group is every review sharing one scope key.
type Group struct {
	Name         string `json:"name"`
	TotalReviews int    `json:"totalReviews"`
	Items        []Item `json:"items"`
}

// Aggregate buckets reviews by their zoneName or departmentName snapshot.
// Groups appear in the order their first review appears in reviews, and
// items keep the source order. The key is the stored name as-is, so names
// differing only in case stay separate.
func Aggregate(reviews []models.Review, scope Scope) ([]Group, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, string(scope))
	}

	groups := []Group{}
	index := make(map[string]int)
	for _, r := range reviews {
		key := r.ZoneName
		if scope == ScopeDepartment {
			key = r.DepartmentName
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Name: key, Items: []Item{}})
		}
		groups[i].Items = append(groups[i].Items, project(r))
		groups[i].TotalReviews = len(groups[i].Items)
	}
	return groups, nil
}

func project(r models.Review) Item {
	n := len(r.Answers)
	if n > maxAnswers {
		n = maxAnswers
	}
	answers := make([]string, 0, n)
	for _, a := range r.Answers[:n] {
		answers = append(answers, utils.TruncateRunes(a.Answer, maxAnswerLength))
	}

	notes := ""
	if r.OverallNotes != nil {
		notes = utils.TruncateRunes(*r.OverallNotes, maxNotesLength)
	}

	return Item{
		Day:          r.Day,
		Date:         utils.ISODate(r.ReviewDate),
		Venue:        r.Venue,
		ReviewerName: r.ReviewerName,
		Status:       string(r.Status),
		Notes:        notes,
		Answers:      answers,
	}
}
