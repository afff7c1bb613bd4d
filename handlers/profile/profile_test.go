package profile_test

import (
	"net/http"
	"testing"

	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/response"
	"github.com/skillport/trainer-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileURL = "/api/trainer/profile"

func TestGetProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodGet, profileURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.User
	testutil.DecodeBody(t, resp, &out)
	assert.Equal(t, trainer.ID, out.ID)
	assert.Equal(t, "trainer@test.local", out.Email)
}

func TestUpdateProfileFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPut, profileURL, map[string]interface{}{
		"bio":              "  Teaching Go since 2015. ",
		"expertise":        "Backend, distributed systems",
		"experience_years": 9,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.User
	testutil.DecodeBody(t, resp, &out)

	assert.Equal(t, "Teaching Go since 2015.", out.Bio)
	assert.Equal(t, "Backend, distributed systems", out.Expertise)
	assert.Equal(t, 9, out.ExperienceYears)
	// Untouched identity fields survive.
	assert.Equal(t, "trainer@test.local", out.Email)
}

func TestUpdateProfileEmailNeedsPasswordConfirm(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPut, profileURL, map[string]interface{}{
		"email": "new@test.local",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "password_confirm is required to change email", msg.Message)
}

func TestUpdateProfileEmailWrongPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPut, profileURL, map[string]interface{}{
		"email":            "new@test.local",
		"password_confirm": "not-the-password",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "Password confirmation is incorrect", msg.Message)
}

func TestUpdateProfileEmailWithConfirm(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	// CreateTrainer hashes this fixture password.
	resp := testutil.DoJSON(t, app, http.MethodPut, profileURL, map[string]interface{}{
		"email":            "New@Test.Local",
		"password_confirm": "trainer-test-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.User
	testutil.DecodeBody(t, resp, &out)
	assert.Equal(t, "new@test.local", out.Email)
}

func TestUpdateProfileEmailTakenByAnotherUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	trainer := testutil.CreateTrainer(t, db, "trainer@test.local")
	testutil.CreateStudent(t, db, "Alice", "alice@test.local")
	app := testutil.NewTrainerAPI(db, trainer.ID)

	resp := testutil.DoJSON(t, app, http.MethodPut, profileURL, map[string]interface{}{
		"email":            "alice@test.local",
		"password_confirm": "trainer-test-pass",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var msg response.Message
	testutil.DecodeBody(t, resp, &msg)
	assert.Equal(t, "Email already in use", msg.Message)
}
