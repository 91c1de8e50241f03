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
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid evening", input: "23:59", want: "23:59"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day boundary", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "missing colon", input: "0900", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing seconds", input: "09:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 6, 10, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("09:15")

	end, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), end)

	end, err = start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), end)

	// landing exactly on the day boundary is fine
	end, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	// running past it is not
	_, err = TimeString("23:45").AddMinutes(30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	// and neither is going negative
	_, err = TimeString("00:10").AddMinutes(-20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:00"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))

	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// malformed values never compare true
	assert.False(t, TimeString("bogus").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("bogus"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:45")))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 6, 10, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	_, err = TimeString("9am").Value()
	assert.Error(t, err)
}
