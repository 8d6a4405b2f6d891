package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDBError(t *testing.T) {
	assert.NoError(t, ClassifyDBError("op", nil))

	err := ClassifyDBError("fetch plastics", puddle.ErrClosedPool)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.NotErrorIs(t, err, ErrQuery)

	err = ClassifyDBError("fetch plastics", &pgconn.PgError{Code: "42P01", Message: "relation does not exist"})
	assert.ErrorIs(t, err, ErrQuery)
	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "42P01", queryErr.SQLState())
	assert.False(t, queryErr.BadInput())
}

func TestQueryError_BadInput(t *testing.T) {
	for code, want := range map[string]bool{
		"22P02": true,
		"22003": true,
		"42804": true,
		"42883": true,
		"42601": false,
		"08006": false,
	} {
		e := &QueryError{Op: "q", Err: &pgconn.PgError{Code: code}}
		assert.Equal(t, want, e.BadInput(), code)
	}
	assert.False(t, (&QueryError{Op: "q", Err: errors.New("x")}).BadInput())
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("fetch: %w", ErrServiceUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: thickness must be a number", ErrInvalidCriteria), http.StatusBadRequest},
		{&QueryError{Op: "q", Err: &pgconn.PgError{Code: "42804"}}, http.StatusBadRequest},
		{&QueryError{Op: "q", Err: &pgconn.PgError{Code: "42P01"}}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := ErrorStatus(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestSendError_Body(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SendError(c, ErrServiceUnavailable))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "database is not available", body.Error.Message)
}

func TestSendError_ParamErrorNamesParameter(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	err := fmt.Errorf("parse filter: %w", &ParamError{Param: "thickness_min", Value: "thin", Reason: "must be a number"})

	require.NoError(t, SendError(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]string{"thickness_min": "must be a number"}, body.Error.Details)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
	assert.Equal(t, `invalid search criteria: thickness_min must be a number, got "thin"`, errors.Unwrap(err).Error())
}
