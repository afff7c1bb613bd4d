package dashboard_test

import (
	"net/http"
	"testing"

	"github.com/skillport/trainer-api/handlers/dashboard"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryURL = "/api/trainer/dashboard/summary"

func TestSummaryEmptyTrainer(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodGet, summaryURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dashboard.Summary
	testutil.DecodeBody(t, resp, &s)

	assert.Zero(t, s.Cards.MyCourses)
	assert.Zero(t, s.Cards.TotalEnrolled)
	assert.Zero(t, s.Cards.PendingSubmissions)
	assert.Zero(t, s.Cards.AvgRating)
	assert.Empty(t, s.RecentPending)
	assert.Empty(t, s.LatestFeedback)
}

func TestSummaryPendingSubmissions(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	bob := testutil.CreateStudent(t, db, "Bob", "bob@test.local")

	c1 := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	c2 := testutil.CreateCourse(t, db, trainer.ID, "Advanced Go")

	testutil.Enroll(t, db, trainer.ID, c1.ID, alice.ID)
	testutil.Enroll(t, db, trainer.ID, c1.ID, bob.ID)
	testutil.Enroll(t, db, trainer.ID, c2.ID, alice.ID)

	// One grade covers (alice, c1); the other two enrollments stay pending.
	require.NoError(t, db.Create(&model.Grade{
		TrainerID: trainer.ID,
		CourseID:  c1.ID,
		StudentID: alice.ID,
		Status:    model.GradeGraded,
	}).Error)

	app := testutil.NewTrainerAPI(db, trainer.ID)
	resp := testutil.DoJSON(t, app, http.MethodGet, summaryURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dashboard.Summary
	testutil.DecodeBody(t, resp, &s)

	assert.Equal(t, 2, s.Cards.MyCourses)
	assert.Equal(t, 3, s.Cards.TotalEnrolled)
	assert.Equal(t, 2, s.Cards.PendingSubmissions)
	assert.Equal(t, 2, s.Today.PendingSubmissions)
	assert.Len(t, s.RecentPending, 2)

	// With no feedback the average reads 0, not NaN.
	assert.Zero(t, s.Cards.AvgRating)
}

func TestSummaryAvgRatingRounding(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	testutil.Enroll(t, db, trainer.ID, course.ID, alice.ID)

	for _, rating := range []int{4, 5, 4} {
		require.NoError(t, db.Create(&model.Feedback{
			TrainerID: trainer.ID,
			CourseID:  course.ID,
			StudentID: alice.ID,
			Rating:    rating,
			Comment:   "good",
		}).Error)
	}

	app := testutil.NewTrainerAPI(db, trainer.ID)
	resp := testutil.DoJSON(t, app, http.MethodGet, summaryURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dashboard.Summary
	testutil.DecodeBody(t, resp, &s)

	// 13/3 = 4.333..., rounded to one decimal.
	assert.Equal(t, 4.3, s.Cards.AvgRating)
	assert.Len(t, s.LatestFeedback, 3)
	assert.Equal(t, "Alice", s.LatestFeedback[0].StudentName)
	assert.Equal(t, "Go Basics", s.LatestFeedback[0].CourseTitle)
}

func TestSummaryScopedToTrainer(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateTrainer(t, db, "owner@test.local")
	other := testutil.CreateTrainer(t, db, "other@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, owner.ID, "Go Basics")
	testutil.Enroll(t, db, owner.ID, course.ID, alice.ID)

	app := testutil.NewTrainerAPI(db, other.ID)
	resp := testutil.DoJSON(t, app, http.MethodGet, summaryURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s dashboard.Summary
	testutil.DecodeBody(t, resp, &s)

	assert.Zero(t, s.Cards.MyCourses)
	assert.Zero(t, s.Cards.TotalEnrolled)
	assert.Zero(t, s.Cards.PendingSubmissions)
}
