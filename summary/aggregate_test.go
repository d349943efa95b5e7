package summary

import (
	"strings"
	"testing"
	"time"

	"pmo-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func review(zone, dept string, status models.ReviewStatus) models.Review {
	return models.Review{
		ZoneName:       zone,
		DepartmentName: dept,
		ReviewDate:     time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC),
		Day:            "Sunday",
		Venue:          "Main Hall",
		ReviewerName:   "Reviewer",
		Status:         status,
	}
}

func TestAggregateGroupsByZoneName(t *testing.T) {
	reviews := []models.Review{
		review("North", "Kitchen", models.ReviewStatusCompleted),
		review("South", "Kitchen", models.ReviewStatusCompleted),
		review("North", "Security", models.ReviewStatusDraft),
	}

	groups, err := Aggregate(reviews, ScopeZone)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "North", groups[0].Name)
	assert.Equal(t, 2, groups[0].TotalReviews)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "completed", groups[0].Items[0].Status)
	assert.Equal(t, "draft", groups[0].Items[1].Status)

	assert.Equal(t, "South", groups[1].Name)
	assert.Equal(t, 1, groups[1].TotalReviews)
}

func TestAggregateEveryReviewInExactlyOneGroup(t *testing.T) {
	reviews := []models.Review{
		review("North", "Kitchen", models.ReviewStatusCompleted),
		review("north", "Kitchen", models.ReviewStatusDraft),
		review("South", "Security", models.ReviewStatusArchived),
		review("South", "Kitchen", models.ReviewStatusCompleted),
	}

	for _, scope := range []Scope{ScopeZone, ScopeDepartment} {
		groups, err := Aggregate(reviews, scope)
		require.NoError(t, err)

		total := 0
		seen := map[string]bool{}
		for _, g := range groups {
			assert.False(t, seen[g.Name], "duplicate group %q", g.Name)
			seen[g.Name] = true
			total += len(g.Items)
		}
		assert.Equal(t, len(reviews), total, "scope %s", scope)
	}

	byZone, _ := Aggregate(reviews, ScopeZone)
	// Differently-cased snapshots are separate keys.
	assert.Len(t, byZone, 3)

	byDept, _ := Aggregate(reviews, ScopeDepartment)
	require.Len(t, byDept, 2)
	assert.Equal(t, "Kitchen", byDept[0].Name)
	assert.Equal(t, 3, byDept[0].TotalReviews)
}

func TestAggregateTruncatesProjection(t *testing.T) {
	notes := strings.Repeat("n", 1500)
	r := review("North", "Kitchen", models.ReviewStatusCompleted)
	r.OverallNotes = &notes
	for i := 0; i < 5; i++ {
		r.Answers = append(r.Answers, models.ReviewAnswer{
			QuestionID: "q",
			Answer:     strings.Repeat("a", 800),
		})
	}

	groups, err := Aggregate([]models.Review{r}, ScopeZone)
	require.NoError(t, err)
	item := groups[0].Items[0]

	assert.Len(t, item.Notes, maxNotesLength)
	require.Len(t, item.Answers, maxAnswers)
	for _, a := range item.Answers {
		assert.Len(t, a, maxAnswerLength)
	}
	assert.Equal(t, "2025-03-09", item.Date)
	assert.Equal(t, "Sunday", item.Day)
	assert.Equal(t, "Main Hall", item.Venue)
}

func TestAggregateShortFieldsUntouched(t *testing.T) {
	notes := "fine"
	r := review("North", "Kitchen", models.ReviewStatusDraft)
	r.OverallNotes = &notes
	r.Answers = []models.ReviewAnswer{{Answer: "ok"}}

	groups, err := Aggregate([]models.Review{r}, ScopeDepartment)
	require.NoError(t, err)
	assert.Equal(t, "fine", groups[0].Items[0].Notes)
	assert.Equal(t, []string{"ok"}, groups[0].Items[0].Answers)
}

func TestAggregateEmptyAndInvalidScope(t *testing.T) {
	groups, err := Aggregate(nil, ScopeZone)
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = Aggregate([]models.Review{review("North", "Kitchen", "")}, Scope("venue"))
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("zone")
	require.NoError(t, err)
	assert.Equal(t, ScopeZone, s)

	s, err = ParseScope("department")
	require.NoError(t, err)
	assert.Equal(t, ScopeDepartment, s)

	for _, bad := range []string{"", "Zone", "departments", "all"} {
		_, err := ParseScope(bad)
		assert.ErrorIs(t, err, ErrInvalidScope, bad)
	}
}
