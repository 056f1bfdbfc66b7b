package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		part     int
		total    int
		expected float64
	}{
		{"denominador zero", 5, 0, 0},
		{"arredonda duas casas", 1, 3, 33.33},
		{"cem por cento", 4, 4, 100},
		{"dois terços", 2, 3, 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percentage(tt.part, tt.total))
		})
	}
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date, err := ParseDate("2024-03-15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 15, 12, 0, 0, 0, loc), *date)

	empty, err := ParseDate("", loc)
	assert.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseDate("15/03/2024", loc)
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idSize)
}
