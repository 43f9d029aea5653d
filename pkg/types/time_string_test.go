package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "hh:mm:ss drops seconds", input: "17:45:59", want: "17:45"},
		{name: "padded spaces", input: " 08:00 ", want: "08:00"},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	nine := MustTimeString("09:00")
	noon := MustTimeString("12:00")

	assert.True(t, nine.IsBefore(noon))
	assert.False(t, noon.IsBefore(nine))
	assert.False(t, nine.IsBefore(nine))
	assert.Equal(t, 9*60, nine.Minutes())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC) // 01:00 on the 11th in loc

	got := MustTimeString("09:15").On(day, loc)

	assert.Equal(t, time.Date(2025, 3, 11, 9, 15, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want TimeString
	}{
		{name: "postgres time text", src: "09:00:00", want: "09:00"},
		{name: "bytes", src: []byte("18:30:00"), want: "18:30"},
		{name: "time with zone", src: "07:15:00+03", want: "07:15"},
		{name: "iso timestamp text", src: "0000-01-01T10:05:00Z", want: "10:05"},
		{name: "timestamp", src: time.Date(2024, 1, 1, 14, 20, 0, 0, time.UTC), want: "14:20"},
		{name: "null", src: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TimeString
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad TimeString
	assert.Error(t, bad.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := MustTimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("99:99").Value()
	assert.Error(t, err)
}
