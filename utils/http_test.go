package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
}

func TestWriteJSONNilBody(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusOK, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteError(w, http.StatusNotFound, "There are no drinks")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)

	// the numeric code inside the envelope mirrors the HTTP status
	var envelope ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusNotFound, envelope.Error)
	assert.Equal(t, "There are no drinks", envelope.Message)
}

func TestValidateStruct(t *testing.T) {
	type subject struct {
		Name  string `validate:"required"`
		Count int    `validate:"gte=0"`
	}

	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&subject{Name: "ok", Count: 1}))
	})

	t.Run("violations reported per field", func(t *testing.T) {
		err := ValidateStruct(&subject{Count: -1})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "Name")
		assert.Contains(t, validationErr.Fields, "Count")
	})
}
