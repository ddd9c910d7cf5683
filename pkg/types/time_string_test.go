package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTimeStringFromString тестирует валидацию формата HH:MM
func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning time", input: "10:00", wantErr: false},
		{name: "valid midnight", input: "00:00", wantErr: false},
		{name: "valid end of day", input: "23:59", wantErr: false},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "abcde", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

// TestTimeStringMinutes тестирует конвертацию в минуты с начала суток
func TestTimeStringMinutes(t *testing.T) {
	tests := []struct {
		input   TimeString
		minutes int
	}{
		{input: "00:00", minutes: 0},
		{input: "10:00", minutes: 600},
		{input: "14:30", minutes: 870},
		{input: "23:59", minutes: 1439},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			m, err := tt.input.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, m)
		})
	}
}

// TestTimeStringComparison тестирует сравнение времен
func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("12:00"))
	assert.False(t, TimeString("12:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("12:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("12:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Невалидные значения не считаются ни раньше, ни позже
	assert.False(t, TimeString("xx:yy").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("xx:yy"))
}

// TestTimeStringAddMinutes тестирует арифметику в пределах суток
func TestTimeStringAddMinutes(t *testing.T) {
	result, err := TimeString("10:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), result)

	result, err = TimeString("18:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), result)

	// Выход за пределы суток
	_, err = TimeString("23:00").AddMinutes(120)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

// TestTimeStringFormat12Hour тестирует 12-часовой формат для витрины
func TestTimeStringFormat12Hour(t *testing.T) {
	assert.Equal(t, "10:00 AM", TimeString("10:00").Format12Hour())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Format12Hour())
	assert.Equal(t, "8:00 PM", TimeString("20:00").Format12Hour())
	assert.Equal(t, "12:00 AM", TimeString("00:00").Format12Hour())
}

// TestTimeStringOn тестирует привязку времени к дате
func TestTimeStringOn(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	result, err := TimeString("14:30").On(date)
	require.NoError(t, err)

	assert.Equal(t, 14, result.Hour())
	assert.Equal(t, 30, result.Minute())
	assert.Equal(t, loc, result.Location())
}

// TestTimeStringScan тестирует чтение из БД
func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	// Колонки TIME приходят с секундами, усекаем до HH:MM
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("14:30:00")))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}
