package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"pmo-review-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func baseReviewInput() ReviewInput {
	return ReviewInput{
		ZoneID:       strPtr("z1"),
		DepartmentID: strPtr("d1"),
		ReviewDate:   strPtr("2025-03-09"),
		Day:          strPtr("Sunday"),
		Venue:        strPtr("Main Hall"),
	}
}

func TestReviewCreateRequiresFields(t *testing.T) {
	pool, state := newScriptedPool(t)
	in := baseReviewInput()
	in.Venue = nil
	in.Day = strPtr("  ")

	_, err := NewReviewService(pool).Create(context.Background(), in, Reviewer{ID: "u1", Name: "Rev"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "day, venue")
	assert.Zero(t, state.statements())
}

func TestReviewCreateSnapshotsNamesAndReviewer(t *testing.T) {
	pool, _ := newScriptedPool(t,
		query("SELECT `id`,`name` FROM `zones` WHERE id = \\?", []string{"id", "name"}, []driver.Value{"z1", "North"}),
		query("SELECT `id`,`name` FROM `departments` WHERE id = \\?", []string{"id", "name"}, []driver.Value{"d1", "Kitchen"}),
		exec("INSERT INTO `reviews`"),
	)

	review, err := NewReviewService(pool).Create(context.Background(), baseReviewInput(), Reviewer{ID: "u1", Name: "Rev One"})
	require.NoError(t, err)
	assert.Equal(t, "North", review.ZoneName)
	assert.Equal(t, "Kitchen", review.DepartmentName)
	assert.Equal(t, "u1", review.ReviewedBy)
	assert.Equal(t, "Rev One", review.ReviewerName)
	assert.Equal(t, models.ReviewStatusDraft, review.Status)
	assert.Equal(t, "2025-03-09", review.ReviewDate.Format("2006-01-02"))
	assert.NotEmpty(t, review.ID)
}

func TestReviewCreateUnknownZone(t *testing.T) {
	pool, _ := newScriptedPool(t,
		query("SELECT `id`,`name` FROM `zones` WHERE id = \\?", []string{"id", "name"}),
	)

	_, err := NewReviewService(pool).Create(context.Background(), baseReviewInput(), Reviewer{ID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestReviewCreateValidatesAnswersAndStatus(t *testing.T) {
	pool, state := newScriptedPool(t)
	svc := NewReviewService(pool)

	in := baseReviewInput()
	in.ZoneName = strPtr("North")
	in.DepartmentName = strPtr("Kitchen")
	in.Answers = &[]models.ReviewAnswer{{QuestionID: "q1", Answer: "ok", Rating: intPtr(6)}}
	_, err := svc.Create(context.Background(), in, Reviewer{ID: "u1"})
	assert.ErrorIs(t, err, ErrValidation)

	in.Answers = nil
	bad := models.ReviewStatus("published")
	in.Status = &bad
	_, err = svc.Create(context.Background(), in, Reviewer{ID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	in.Status = nil
	in.ReviewDate = strPtr("09/03/2025")
	_, err = svc.Create(context.Background(), in, Reviewer{ID: "u1"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Zero(t, state.statements())
}

func TestReviewListFiltersByStatus(t *testing.T) {
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	pool, _ := newScriptedPool(t,
		&queryStep{
			kind:    kindQuery,
			pattern: regexpMust("SELECT \\* FROM `reviews` WHERE status = \\? ORDER BY review_date DESC"),
			args:    []driver.Value{"completed"},
			columns: []string{"id", "zone_name", "department_name", "review_date", "status", "answers"},
			rows: [][]driver.Value{
				{"r1", "North", "Kitchen", day, "completed", []byte(`[{"questionId":"q1","questionText":"Clean?","answer":"yes","rating":4}]`)},
			},
		},
	)

	reviews, err := NewReviewService(pool).List(context.Background(), "completed")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.Len(t, reviews[0].Answers, 1)
	assert.Equal(t, "q1", reviews[0].Answers[0].QuestionID)
	require.NotNil(t, reviews[0].Answers[0].Rating)
	assert.Equal(t, 4, *reviews[0].Answers[0].Rating)
}

func TestReviewListRejectsUnknownStatus(t *testing.T) {
	pool, state := newScriptedPool(t)
	_, err := NewReviewService(pool).List(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, state.statements())
}

func TestReviewDeleteMissing(t *testing.T) {
	del := exec("DELETE FROM `reviews` WHERE id = \\?")
	del.result = scriptedResult{}
	pool, _ := newScriptedPool(t, del)

	assert.ErrorIs(t, NewReviewService(pool).Delete(context.Background(), "nope"), ErrNotFound)
}
