package format

import (
	"strings"
	"testing"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// plainSpaces folds locale-specific spaces (no-break, narrow no-break) to ASCII.
func plainSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "225 000", plainSpaces(FormatNumber(225000)))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "50000", want: "50 000"},
		{in: "12345.5", want: "12 345,50"},
		{in: "0.07", want: "0,07"},
		{in: "39616.444", want: "39 616,44"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, plainSpaces(got))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	got := FormatMoney(decimal.NewFromInt(225000))
	assert.Equal(t, "225 000 ₽", plainSpaces(got))
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "пачек"},
		{n: 1, want: "пачка"},
		{n: 2, want: "пачки"},
		{n: 4, want: "пачки"},
		{n: 5, want: "пачек"},
		{n: 11, want: "пачек"},
		{n: 14, want: "пачек"},
		{n: 21, want: "пачка"},
		{n: 23, want: "пачки"},
		{n: 111, want: "пачек"},
		{n: 101, want: "пачка"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Plural(tt.n, "пачка", "пачки", "пачек"))
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "8 пачек", Count(8, "пачка", "пачки", "пачек"))
	assert.Equal(t, "1 пачка", Count(1, "пачка", "пачки", "пачек"))
}
