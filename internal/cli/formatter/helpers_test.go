package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"zero", time.Time{}, "nie"},
		{"seconds", now.Add(-20 * time.Second), "gerade eben"},
		{"minutes", now.Add(-5 * time.Minute), "vor 5 Min"},
		{"hours", now.Add(-3 * time.Hour), "vor 3 Std"},
		{"days", now.Add(-48 * time.Hour), "10.03. 12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "12,50 €", Money(12.5))
	assert.Equal(t, "0,00 €", Money(0))
	assert.Equal(t, "3,34 €", Money(domain.Quantity(3.336)))
}

func TestDayLabels(t *testing.T) {
	d := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Mo 10.03.", DayLabel(d))
	assert.Equal(t, "So", WeekdayShort(d.AddDate(0, 0, 6)))
	assert.Equal(t, "März 2025", MonthLabel(d))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Spaghetti", Truncate("Spaghetti", 9))
	assert.Equal(t, "Spag…", Truncate("Spaghetti", 5))
	assert.Equal(t, "", Truncate("x", 0))
	assert.Equal(t, "ab  ", PadRight("ab", 4))
}

func TestAlertAndBox(t *testing.T) {
	out := Alert("Speichern fehlgeschlagen", errors.New("server down"))
	assert.Contains(t, out, "Speichern fehlgeschlagen")
	assert.Contains(t, out, "server down")

	box := RenderBox("Liste", "Milch")
	assert.Contains(t, box, "LISTE")
	assert.Contains(t, box, "Milch")
}

func TestModeBadge(t *testing.T) {
	assert.Contains(t, ModeBadge(domain.ModeDelete), "DELETE")
	SetDark(false)
	assert.False(t, IsDark())
	assert.Contains(t, ModeBadge(domain.ModeView), "VIEW")
	SetDark(true)
	assert.True(t, IsDark())
}
