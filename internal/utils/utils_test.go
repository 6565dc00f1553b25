package utils

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-06-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", FormatDate(d))

	_, err = ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("15/06/2024")
	assert.Error(t, err)
}

func TestFormatZeroValues(t *testing.T) {
	assert.Empty(t, FormatDate(time.Time{}))
	assert.Empty(t, FormatTimestamp(time.Time{}))
}

func TestParseClock(t *testing.T) {
	v, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", v)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestDecodeJSONRequest(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Lisbon"}`))
	require.NoError(t, DecodeJSONRequest(rec, r, &dst))
	assert.Equal(t, "Lisbon", dst.Name)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"x"}`))
	assert.ErrorContains(t, DecodeJSONRequest(rec, r, &dst), "unknown field")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorContains(t, DecodeJSONRequest(httptest.NewRecorder(), r, &dst), "empty")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSONRequest(httptest.NewRecorder(), r, &dst))
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorResponse(rec, http.StatusConflict, "conflict", "already exists")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"conflict","message":"already exists"}`, rec.Body.String())
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf)
	l.Info("hello %s", "world")
	l.Warn("careful")
	assert.Contains(t, buf.String(), "[INFO]")
	assert.Contains(t, buf.String(), "hello world")
	assert.Contains(t, buf.String(), "[WARN]")

	var nilLogger *Logger
	assert.NotPanics(t, func() { nilLogger.Error("ignored") })
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), 3, time.Millisecond, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	}, Discard())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	err = RetryWithBackoff(context.Background(), 2, time.Millisecond, func(context.Context) error {
		return errors.New("down")
	}, Discard())
	assert.ErrorContains(t, err, "all 2 attempts failed")
}
