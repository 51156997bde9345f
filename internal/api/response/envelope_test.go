package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/keeperleague/internal/api/response"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	response.Success(w, http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decode(t, w)
	assert.Equal(t, true, env["success"])
	assert.NotNil(t, env["data"])
	assert.NotContains(t, env, "error")
}

func TestErr(t *testing.T) {
	w := httptest.NewRecorder()

	response.Err(w, http.StatusNotFound, response.CodeNotFound, "league not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decode(t, w)
	assert.Equal(t, false, env["success"])
	assert.NotContains(t, env, "data")

	errObj := env["error"].(map[string]any)
	assert.Equal(t, response.CodeNotFound, errObj["code"])
	assert.Equal(t, "league not found", errObj["message"])
	assert.NotContains(t, errObj, "details")
}

func TestErrWithDetails(t *testing.T) {
	w := httptest.NewRecorder()

	response.ErrWithDetails(w, http.StatusUnprocessableEntity, response.CodeValidationFailed,
		"selections include players not eligible for this team",
		map[string]any{"player_ids": []string{"abc"}})

	env := decode(t, w)
	errObj := env["error"].(map[string]any)
	assert.Equal(t, response.CodeValidationFailed, errObj["code"])

	details := errObj["details"].(map[string]any)
	assert.Len(t, details["player_ids"], 1)
}
