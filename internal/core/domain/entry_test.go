package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

func TestEntry_IsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.Entry
		want  bool
	}{
		{
			name: "balanced two-line entry",
			entry: domain.Entry{
				Lines: []domain.EntryLine{
					{AccountID: "a1", Debit: 100000},
					{AccountID: "a2", Credit: 100000},
				},
			},
			want: true,
		},
		{
			name: "balanced split across three lines",
			entry: domain.Entry{
				Lines: []domain.EntryLine{
					{AccountID: "a1", Debit: 100000},
					{AccountID: "a2", Credit: 60000},
					{AccountID: "a3", Credit: 40000},
				},
			},
			want: true,
		},
		{
			name: "unbalanced entry",
			entry: domain.Entry{
				Lines: []domain.EntryLine{
					{AccountID: "a1", Debit: 100000},
					{AccountID: "a2", Credit: 99999},
				},
			},
			want: false,
		},
		{
			name: "zero-amount lines do not balance",
			entry: domain.Entry{
				Lines: []domain.EntryLine{
					{AccountID: "a1"},
					{AccountID: "a2"},
				},
			},
			want: false,
		},
		{
			name:  "no lines",
			entry: domain.Entry{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsBalanced())
		})
	}
}

func TestEntry_Totals(t *testing.T) {
	entry := domain.Entry{
		Lines: []domain.EntryLine{
			{AccountID: "a1", Debit: 70000},
			{AccountID: "a2", Debit: 30000},
			{AccountID: "a3", Credit: 100000},
		},
	}

	assert.Equal(t, int64(100000), entry.TotalDebit())
	assert.Equal(t, int64(100000), entry.TotalCredit())
}

func TestPeriod_Contains(t *testing.T) {
	period := domain.Period{
		Code:      "2025-09",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"inside the period", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), true},
		{"first day is inside", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{"last day is inside", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), true},
		{"last day with a time component", time.Date(2025, 9, 30, 10, 30, 0, 0, time.UTC), true},
		{"day before the period", time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), false},
		{"day after the period", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Contains(tt.date))
		})
	}
}

func TestPeriod_Overlaps(t *testing.T) {
	period := domain.Period{
		Code:      "2025-09",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{
			"disjoint earlier range",
			time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"disjoint later range",
			time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"range straddling the start",
			time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"range fully inside",
			time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"range covering the whole period",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"single shared boundary day",
			time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Overlaps(tt.start, tt.end))
		})
	}
}
