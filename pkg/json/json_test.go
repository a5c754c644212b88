package json

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBodyRestoresBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))

	body, err := ReadBody(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))

	again, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestReadBodyTooLarge(t *testing.T) {
	payload := `{"videoUrl":"` + strings.Repeat("a", MaxBodySize) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

	_, err := ReadBody(httptest.NewRecorder(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestReadBodyAtLimit(t *testing.T) {
	payload := strings.Repeat(" ", MaxBodySize)
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

	body, err := ReadBody(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Len(t, body, MaxBodySize)
}

func TestNormalize(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}

	got, err := Normalize(payload{Name: "x", Count: 2, Tags: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "x",
		"count": float64(2),
		"tags":  []any{"a"},
	}, got)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, errors.New("boom"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}

func TestWriteEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteEmpty(rec, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
