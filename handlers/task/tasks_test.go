package task_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedLesson builds the course -> module -> lesson chain tasks hang off.
func seedLesson(t *testing.T, db *gorm.DB, trainerID uint) model.Lesson {
	t.Helper()

	course := testutil.CreateCourse(t, db, trainerID, "Go Basics")

	mod := model.CourseModule{
		TrainerID: trainerID,
		CourseID:  course.ID,
		Title:     "Introduction",
		Order:     1,
	}
	require.NoError(t, db.Create(&mod).Error)

	lesson := model.Lesson{
		TrainerID: trainerID,
		CourseID:  course.ID,
		ModuleID:  mod.ID,
		Title:     "Welcome",
		Type:      model.LessonTypeVideo,
		Status:    model.StatusDraft,
		Order:     1,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func setup(t *testing.T) (*gorm.DB, *fiber.App, model.Lesson) {
	t.Helper()

	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	lesson := seedLesson(t, db, trainer.ID)
	return db, testutil.NewTrainerAPI(db, trainer.ID), lesson
}

func TestCreateAssignmentDenormalizesHierarchy(t *testing.T) {
	_, app, lesson := setup(t)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainer/lessons/%d/assignments", lesson.ID),
		map[string]interface{}{"title": "Homework 1", "instructions": "Do the exercises"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var a model.Assignment
	testutil.DecodeBody(t, resp, &a)

	assert.Equal(t, lesson.CourseID, a.CourseID)
	assert.Equal(t, lesson.ModuleID, a.ModuleID)
	assert.Equal(t, lesson.ID, a.LessonID)
	assert.Equal(t, float64(100), a.TotalMarks)
	assert.Equal(t, model.StatusDraft, a.Status)
	assert.Nil(t, a.DueDate)
}

func TestCreateAssignmentRequiresTitle(t *testing.T) {
	_, app, lesson := setup(t)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainer/lessons/%d/assignments", lesson.ID),
		map[string]interface{}{"instructions": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateQuizDefaults(t *testing.T) {
	_, app, lesson := setup(t)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainer/lessons/%d/quizzes", lesson.ID),
		map[string]interface{}{"title": "Checkpoint 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var q model.Quiz
	testutil.DecodeBody(t, resp, &q)

	assert.Equal(t, 10, q.TimeLimitMinutes)
	assert.Equal(t, float64(100), q.TotalMarks)
	assert.Equal(t, model.StatusDraft, q.Status)
	// A quiz with no questions serializes as an empty list, never null.
	assert.NotNil(t, q.Questions)
	assert.Empty(t, q.Questions)
}

func TestCreateQuizStoresQuestionsVerbatim(t *testing.T) {
	_, app, lesson := setup(t)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainer/lessons/%d/quizzes", lesson.ID),
		map[string]interface{}{
			"title":              "Checkpoint 1",
			"time_limit_minutes": 20,
			"questions": []map[string]interface{}{
				{
					"question":      "What does := do?",
					"options":       []string{"declares and assigns", "compares"},
					"correct_index": 0,
				},
				{
					"question": "Pick one",
					"options":  []string{"a"},
					// Out of bounds on purpose; the API stores it as sent.
					"correct_index": 7,
				},
			},
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var q model.Quiz
	testutil.DecodeBody(t, resp, &q)

	assert.Equal(t, 20, q.TimeLimitMinutes)
	require.Len(t, q.Questions, 2)
	assert.Equal(t, 0, q.Questions[0].CorrectIndex)
	assert.Equal(t, 7, q.Questions[1].CorrectIndex)
}

func TestUpdateQuizReplacesQuestions(t *testing.T) {
	db, app, lesson := setup(t)

	quiz := model.Quiz{
		TrainerID:        lesson.TrainerID,
		CourseID:         lesson.CourseID,
		ModuleID:         lesson.ModuleID,
		LessonID:         lesson.ID,
		Title:            "Checkpoint 1",
		TimeLimitMinutes: 10,
		TotalMarks:       100,
		Status:           model.StatusDraft,
		Questions: []model.QuizQuestion{
			{Question: "Old question", Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}
	require.NoError(t, db.Create(&quiz).Error)

	resp := testutil.DoJSON(t, app, http.MethodPut,
		fmt.Sprintf("/api/trainer/quizzes/%d", quiz.ID),
		map[string]interface{}{
			"questions": []map[string]interface{}{
				{"question": "New question", "options": []string{"x", "y", "z"}, "correct_index": 2},
			},
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated model.Quiz
	testutil.DecodeBody(t, resp, &updated)

	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "New question", updated.Questions[0].Question)
	assert.Equal(t, 2, updated.Questions[0].CorrectIndex)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Checkpoint 1", updated.Title)
	assert.Equal(t, 10, updated.TimeLimitMinutes)
}

func TestToggleAssignmentPublish(t *testing.T) {
	db, app, lesson := setup(t)

	a := model.Assignment{
		TrainerID:  lesson.TrainerID,
		CourseID:   lesson.CourseID,
		ModuleID:   lesson.ModuleID,
		LessonID:   lesson.ID,
		Title:      "Homework 1",
		TotalMarks: 100,
		Status:     model.StatusDraft,
	}
	require.NoError(t, db.Create(&a).Error)

	url := fmt.Sprintf("/api/trainer/assignments/%d/publish", a.ID)

	resp := testutil.DoJSON(t, app, http.MethodPatch, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var published model.Assignment
	testutil.DecodeBody(t, resp, &published)
	assert.Equal(t, model.StatusPublished, published.Status)

	resp = testutil.DoJSON(t, app, http.MethodPatch, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var back model.Assignment
	testutil.DecodeBody(t, resp, &back)
	assert.Equal(t, model.StatusDraft, back.Status)
}

func TestTaskRoutesScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateTrainer(t, db, "owner@test.local")
	other := testutil.CreateTrainer(t, db, "other@test.local")
	lesson := seedLesson(t, db, owner.ID)

	app := testutil.NewTrainerAPI(db, other.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/trainer/lessons/%d/assignments", lesson.ID),
		map[string]interface{}{"title": "Homework 1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/trainer/lessons/%d/quizzes", lesson.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
