package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/domain"
)

func TestParseDateTime(t *testing.T) {
	want := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

	for _, raw := range []string{"2025-10-15T10:30:00", "2025-10-15T10:30", "2025-10-15T10:30:00Z", "2025-10-15T10:30:00+02:00"} {
		got, err := ParseDateTime(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseDateTime("10:30")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name  string `json:"name" validate:"required"`
		Count int    `json:"count" validate:"gte=0"`
	}

	var b body
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","count":1}`)), &b))
	assert.Equal(t, "x", b.Name)

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"count":-1}`)), &b)
	assert.Error(t, err)

	err = DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``)), &b)
	assert.EqualError(t, err, "empty request body")
}

func TestPathAndQuery(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/?serviceId=3&flag=true", nil), map[string]string{"id": "42"})

	id, err := PathInt64(req, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = PathInt64(req, "missing")
	assert.Error(t, err)

	serviceID, err := QueryOptionalInt64(req, "serviceId")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *serviceID)

	none, err := QueryOptionalInt64(req, "other")
	require.NoError(t, err)
	assert.Nil(t, none)

	flag, err := QueryBool(req, "flag")
	require.NoError(t, err)
	assert.True(t, flag)

	_, err = QueryDate(req, "date")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondServiceUnavailable(rec)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":503,"message":"сервис временно недоступен, попробуйте ещё раз"}`, rec.Body.String())
}
