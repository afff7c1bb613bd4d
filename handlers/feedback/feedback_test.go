package feedback_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/skillport/trainer-api/handlers/feedback"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFeedback(t *testing.T, db *gorm.DB, trainerID, courseID, studentID uint, rating int) model.Feedback {
	t.Helper()

	fb := model.Feedback{
		TrainerID: trainerID,
		CourseID:  courseID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   "Could use more exercises",
	}
	require.NoError(t, db.Create(&fb).Error)
	return fb
}

func TestListFeedbackJoinsStudent(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	seedFeedback(t, db, trainer.ID, course.ID, alice.ID, 4)

	app := testutil.NewTrainerAPI(db, trainer.ID)
	resp := testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainer/courses/%d/feedback", course.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out feedback.ListFeedbackResponse
	testutil.DecodeBody(t, resp, &out)

	assert.Equal(t, course.ID, out.Course.ID)
	require.Len(t, out.Feedback, 1)
	assert.Equal(t, 4, out.Feedback[0].Rating)
	assert.Equal(t, "Alice", out.Feedback[0].Student.Name)
	assert.Equal(t, "alice@test.local", out.Feedback[0].Student.Email)
}

func TestUpdateFeedbackIndependentFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	fb := seedFeedback(t, db, trainer.ID, course.ID, alice.ID, 3)

	app := testutil.NewTrainerAPI(db, trainer.ID)
	url := fmt.Sprintf("/api/trainer/feedback/%d", fb.ID)

	// Setting the reply alone must not flip resolved.
	resp := testutil.DoJSON(t, app, http.MethodPatch, url, map[string]interface{}{
		"trainer_reply": "Thanks, noted for the next cohort.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var replied model.Feedback
	testutil.DecodeBody(t, resp, &replied)
	assert.Equal(t, "Thanks, noted for the next cohort.", replied.TrainerReply)
	assert.False(t, replied.Resolved)

	// Resolving alone must keep the reply.
	resp = testutil.DoJSON(t, app, http.MethodPatch, url, map[string]interface{}{
		"resolved": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved model.Feedback
	testutil.DecodeBody(t, resp, &resolved)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, "Thanks, noted for the next cohort.", resolved.TrainerReply)
}

func TestFeedbackScopedToTrainer(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateTrainer(t, db, "owner@test.local")
	other := testutil.CreateTrainer(t, db, "other@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, owner.ID, "Go Basics")
	fb := seedFeedback(t, db, owner.ID, course.ID, alice.ID, 5)

	app := testutil.NewTrainerAPI(db, other.ID)

	resp := testutil.DoJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/trainer/feedback/%d", fb.ID),
		map[string]interface{}{"resolved": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = testutil.DoJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/trainer/feedback/%d", fb.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteFeedback(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	fb := seedFeedback(t, db, trainer.ID, course.ID, alice.ID, 2)

	app := testutil.NewTrainerAPI(db, trainer.ID)
	resp := testutil.DoJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/trainer/feedback/%d", fb.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&model.Feedback{}).Where("id = ?", fb.ID).Count(&count).Error)
	assert.Zero(t, count)
}
