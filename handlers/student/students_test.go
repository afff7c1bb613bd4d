package student_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/skillport/trainer-api/handlers/student"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentsURL = "/api/trainer/students"

func TestCreateStudentWithProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, studentsURL, map[string]interface{}{
		"email":     "Alice@Test.Local",
		"password":  "super-secret-1",
		"full_name": "Alice Carter",
		"phone":     "555-0101",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out student.StudentDetail
	testutil.DecodeBody(t, resp, &out)

	assert.Equal(t, "alice@test.local", out.Student.Email)
	assert.Equal(t, model.RoleStudent, out.Student.Role)
	assert.Equal(t, "Alice Carter", out.Student.Name)
	assert.Equal(t, "Alice Carter", out.Profile.FullName)
	assert.Equal(t, "555-0101", out.Profile.Phone)
	assert.Equal(t, model.RoleTrainer, out.Profile.UpdatedByRole)

	// Account and profile land together or not at all.
	var profileCount int64
	require.NoError(t, db.Model(&model.StudentProfile{}).
		Where("user_id = ?", out.Student.ID).
		Count(&profileCount).Error)
	assert.Equal(t, int64(1), profileCount)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, studentsURL, map[string]interface{}{
		"email":    "alice@test.local",
		"password": "super-secret-1",
		"name":     "Alice Again",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "Email already exists", msg.Message)
}

func TestCreateStudentRejectsShortPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPost, studentsURL, map[string]interface{}{
		"email":    "bob@test.local",
		"password": "short",
		"name":     "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetStudentLazilyCreatesProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	var before int64
	require.NoError(t, db.Model(&model.StudentProfile{}).
		Where("user_id = ?", alice.ID).
		Count(&before).Error)
	require.Zero(t, before)

	resp := testutil.DoJSON(t, app, http.MethodGet,
		fmt.Sprintf("%s/%d", studentsURL, alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out student.StudentDetail
	testutil.DecodeBody(t, resp, &out)

	assert.Equal(t, alice.ID, out.Profile.UserID)
	assert.Equal(t, "Alice", out.Profile.FullName)
	assert.Equal(t, model.RoleTrainer, out.Profile.UpdatedByRole)

	var after int64
	require.NoError(t, db.Model(&model.StudentProfile{}).
		Where("user_id = ?", alice.ID).
		Count(&after).Error)
	assert.Equal(t, int64(1), after)
}

func TestListStudentsSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	testutil.CreateStudent(t, db, "Alice Carter", "alice@test.local")
	testutil.CreateStudent(t, db, "Bob Okafor", "bob@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodGet, studentsURL+"?search=ALICE", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []student.StudentRow
	testutil.DecodeBody(t, resp, &rows)

	require.Len(t, rows, 1)
	assert.Equal(t, "Alice Carter", rows[0].Name)
}

func TestListStudentsExcludesTrainers(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodGet, studentsURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []student.StudentRow
	testutil.DecodeBody(t, resp, &rows)

	require.Len(t, rows, 1)
	assert.Equal(t, model.RoleStudent, rows[0].Role)
}

func TestUpdateStudentTouchesAccountAndProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPut,
		fmt.Sprintf("%s/%d", studentsURL, alice.ID),
		map[string]interface{}{
			"name":      "Alice C.",
			"full_name": "Alice Carter",
			"address":   "12 Elm Street",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out student.StudentDetail
	testutil.DecodeBody(t, resp, &out)

	assert.Equal(t, "Alice C.", out.Student.Name)
	assert.Equal(t, "Alice Carter", out.Profile.FullName)
	assert.Equal(t, "12 Elm Street", out.Profile.Address)
}

func TestDeleteStudent(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	alice := testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodDelete,
		fmt.Sprintf("%s/%d", studentsURL, alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var found model.User
	err := db.First(&found, "id = ?", alice.ID).Error
	assert.Error(t, err)
}
