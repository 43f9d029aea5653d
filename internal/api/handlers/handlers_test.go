package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

type sample struct {
	RoomID  int64  `json:"roomId" validate:"required,gt=0"`
	Status  string `json:"status" validate:"omitempty,oneof=pending approved"`
	OwnerID *int64 `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

func TestDecodeJSONAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		fields  map[string]string
	}{
		{name: "ok", body: `{"roomId":3,"status":"approved"}`},
		{name: "malformed", body: `{"roomId":`, wantErr: true},
		{name: "unknown field", body: `{"roomId":3,"extra":true}`, wantErr: true},
		{name: "missing room", body: `{"status":"pending"}`, wantErr: true, fields: map[string]string{"roomId": "обязательное поле"}},
		{name: "bad owner", body: `{"roomId":3,"userId":-1}`, wantErr: true, fields: map[string]string{"userId": "должно быть больше 0"}},
		{name: "bad status", body: `{"roomId":3,"status":"archived"}`, wantErr: true, fields: map[string]string{"status": "допустимые значения: pending, approved"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst sample
			err := DecodeJSON(r, &dst)
			if err == nil {
				err = Validate(&dst)
			}

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, int64(3), dst.RoomID)
				return
			}
			require.Error(t, err)
			if tt.fields != nil {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.fields, verr.Fields)
			}
		})
	}
}

func TestPathInt64(t *testing.T) {
	for raw, ok := range map[string]bool{"42": true, "0": false, "-1": false, "abc": false, "": false} {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		id, err := PathInt64(r, "id")
		if ok {
			assert.NoError(t, err, raw)
			assert.Equal(t, int64(42), id)
		} else {
			assert.Error(t, err, raw)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	want := time.Date(2025, time.March, 10, 6, 0, 0, 0, time.UTC)

	for _, value := range []string{
		"2025-03-10T06:00:00Z",
		"2025-03-10T09:00:00+03:00",
		"2025-03-10T09:00:00",
		"2025-03-10T09:00",
		"2025-03-10 09:00",
	} {
		got, err := ParseTimestamp(value, msk)
		require.NoError(t, err, value)
		assert.True(t, got.Equal(want), value)
	}

	_, err := ParseTimestamp("10.03.2025 09:00", msk)
	assert.Error(t, err)
}

func TestRespondRejection(t *testing.T) {
	tests := []struct {
		reason error
		status int
	}{
		{reason: validator.ErrInvalidRange, status: http.StatusBadRequest},
		{reason: validator.ErrPastStart, status: http.StatusBadRequest},
		{reason: validator.ErrNoAvailabilityOnDay, status: http.StatusUnprocessableEntity},
		{reason: validator.ErrOutsideAvailabilityWindow, status: http.StatusUnprocessableEntity},
		{reason: validator.ErrOverlapsExistingBooking, status: http.StatusConflict},
		{reason: fmt.Errorf("something else"), status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.reason.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondRejection(rec, fmt.Errorf("create_booking: rejected: %w", tt.reason))

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInvalid(rec, "bad", &ValidationError{Fields: map[string]string{"roomId": "обязательное поле"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "обязательное поле", body.Details["roomId"])
}

func TestRespondJSON_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}
