package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{in: "10:00", want: "10:00:00"},
		{in: "08:30:15", want: "08:30:15"},
		{in: "23:59", want: "23:59:00"},
		{in: "25:00", wantErr: true},
		{in: "10-00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
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
	ten := MustTimeString("10:00")

	assert.True(t, nine.IsBefore(ten))
	assert.False(t, ten.IsBefore(nine))
	assert.False(t, nine.IsBefore(nine))
	assert.True(t, nine.Equal("09:00:00"))
	assert.Equal(t, 9*3600, nine.Seconds())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	got := MustTimeString("10:30").On(date, loc)

	assert.Equal(t, time.Date(2025, 1, 6, 10, 30, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:00:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:30:00.000000")))
	assert.Equal(t, TimeString("08:30:00"), ts)

	require.NoError(t, ts.Scan("17:00:00"))
	assert.Equal(t, TimeString("17:00:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustTimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", v)

	_, err = TimeString("nope").Value()
	assert.Error(t, err)
}
