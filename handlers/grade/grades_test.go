package grade_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/skillport/trainer-api/handlers/grade"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradesURL(courseID uint) string {
	return fmt.Sprintf("/api/trainer/courses/%d/grades", courseID)
}

func TestSaveGradeClampsScores(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	student := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	testutil.Enroll(t, db, trainer.ID, course.ID, student.ID)
	app := testutil.NewTrainerAPI(db, trainer.ID)

	// Out-of-range scores saturate instead of erroring.
	resp := testutil.DoJSON(t, app, http.MethodPost, gradesURL(course.ID), map[string]interface{}{
		"student_id":       student.ID,
		"assignment_score": 150,
		"quiz_score":       -5,
		"final_score":      87.5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved model.Grade
	testutil.DecodeBody(t, resp, &saved)

	assert.Equal(t, float64(100), saved.AssignmentScore)
	assert.Equal(t, float64(0), saved.QuizScore)
	assert.Equal(t, 87.5, saved.FinalScore)
	assert.Equal(t, model.GradeGraded, saved.Status)
}

func TestSaveGradeRequiresEnrollment(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	student := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, gradesURL(course.ID), map[string]interface{}{
		"student_id":  student.ID,
		"final_score": 90,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "Student not enrolled in this course", msg.Message)
}

func TestSaveGradeUpsertsSingleRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	student := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	testutil.Enroll(t, db, trainer.ID, course.ID, student.ID)
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, gradesURL(course.ID), map[string]interface{}{
		"student_id":  student.ID,
		"final_score": 70,
		"remarks":     "first pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first model.Grade
	testutil.DecodeBody(t, resp, &first)

	resp = testutil.DoJSON(t, app, http.MethodPost, gradesURL(course.ID), map[string]interface{}{
		"student_id":  student.ID,
		"final_score": 92,
		"remarks":     "regraded",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second model.Grade
	testutil.DecodeBody(t, resp, &second)

	// Same pair resolves to the same row, last writer wins.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(92), second.FinalScore)
	assert.Equal(t, "regraded", second.Remarks)

	var count int64
	require.NoError(t, db.Model(&model.Grade{}).
		Where("course_id = ? AND student_id = ?", course.ID, student.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveGradeRequiresStudentID(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, gradesURL(course.ID), map[string]interface{}{
		"final_score": 90,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "student_id is required", msg.Message)
}

func TestListGradesMergesRoster(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	bob := testutil.CreateStudent(t, db, "Bob", "bob@test.local")
	course := testutil.CreateCourse(t, db, trainer.ID, "Go Basics")
	testutil.Enroll(t, db, trainer.ID, course.ID, alice.ID)
	testutil.Enroll(t, db, trainer.ID, course.ID, bob.ID)

	require.NoError(t, db.Create(&model.Grade{
		TrainerID:  trainer.ID,
		CourseID:   course.ID,
		StudentID:  alice.ID,
		FinalScore: 88,
		Status:     model.GradeGraded,
	}).Error)

	app := testutil.NewTrainerAPI(db, trainer.ID)
	resp := testutil.DoJSON(t, app, http.MethodGet, gradesURL(course.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out grade.ListGradesResponse
	testutil.DecodeBody(t, resp, &out)

	require.Len(t, out.Rows, 2)

	byStudent := make(map[uint]grade.RosterRow, len(out.Rows))
	for _, row := range out.Rows {
		byStudent[row.StudentID] = row
	}

	graded, ok := byStudent[alice.ID]
	require.True(t, ok)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, float64(88), graded.Grade.FinalScore)

	ungraded, ok := byStudent[bob.ID]
	require.True(t, ok)
	assert.Nil(t, ungraded.Grade)
}

func TestDeleteGradeScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateTrainer(t, db, "owner@test.local")
	other := testutil.CreateTrainer(t, db, "other@test.local")
	student := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	course := testutil.CreateCourse(t, db, owner.ID, "Go Basics")
	testutil.Enroll(t, db, owner.ID, course.ID, student.ID)

	g := model.Grade{
		TrainerID: owner.ID,
		CourseID:  course.ID,
		StudentID: student.ID,
		Status:    model.GradeGraded,
	}
	require.NoError(t, db.Create(&g).Error)

	otherApp := testutil.NewTrainerAPI(db, other.ID)
	resp := testutil.DoJSON(t, otherApp, http.MethodDelete,
		fmt.Sprintf("/api/trainer/grades/%d", g.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	ownerApp := testutil.NewTrainerAPI(db, owner.ID)
	resp = testutil.DoJSON(t, ownerApp, http.MethodDelete,
		fmt.Sprintf("/api/trainer/grades/%d", g.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
