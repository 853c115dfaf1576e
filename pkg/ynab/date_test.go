package ynab

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"date only", `"2025-08-15"`, "2025-08-15"},
		{"rfc3339 timestamp", `"2025-08-15T13:45:00Z"`, "2025-08-15"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 8, 15, 17, 30, 0, 0, time.UTC))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-08-15"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNewDate_TruncatesToDay(t *testing.T) {
	d := NewDate(time.Date(2025, 8, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2025-08-15", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestDate_RoundTripInStruct(t *testing.T) {
	in := NewTransaction{
		AccountID: "account-1",
		Date:      NewDate(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)),
		Amount:    -45990,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2025-08-15"`)
}
