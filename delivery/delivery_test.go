package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		en      string
		ar      string
	}{
		{30, "30 minutes", "30 دقيقة"},
		{1, "1 minute", "1 دقيقة"},
		{60, "1 hour", "ساعة واحدة"},
		{90, "1 hour and 30 minutes", "1 ساعة و 30 دقيقة"},
		{120, "2 hours", "2 ساعة"},
		{181, "3 hours and 1 minute", "3 ساعة و 1 دقيقة"},
		{1440, "1 day", "1 يوم"},
		{1500, "1 day and 1 hour", "1 يوم و 1 ساعة"},
		{2880, "2 days", "2 يوم"},
		{10080, "7 days", "7 يوم"},
		{4380, "3 days and 1 hour", "3 يوم و 1 ساعة"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.en, FormatDuration(tt.minutes, English), "en %d", tt.minutes)
		assert.Equal(t, tt.ar, FormatDuration(tt.minutes, Arabic), "ar %d", tt.minutes)
	}
}

func TestLongest(t *testing.T) {
	assert.Equal(t, DefaultDuration, Longest())
	assert.Equal(t, DefaultDuration, Longest(0, 0))
	assert.Equal(t, 60, Longest(30, 60, 45))
	assert.Equal(t, 10080, Longest(1440, 10080))
}

func TestValidDuration(t *testing.T) {
	assert.False(t, ValidDuration(29))
	assert.True(t, ValidDuration(30))
	assert.True(t, ValidDuration(10080))
	assert.False(t, ValidDuration(10081))
}

func TestEstimatedDateIsExactMinutes(t *testing.T) {
	from := time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC)
	got := EstimatedDate(from, 90)
	assert.Equal(t, time.Date(2026, 3, 2, 1, 20, 0, 0, time.UTC), got)
	assert.Equal(t, 90*time.Minute, got.Sub(from))
}

func TestEstimatorDedupesCategories(t *testing.T) {
	var e Estimator
	e.Add("Fruit", 60)
	e.Add("Fruit", 60)
	e.Add("Meat", 180)
	e.Add("Legacy", 0)

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	est := e.Estimate(now, English)

	assert.Equal(t, 180, est.MaxDeliveryDuration)
	assert.Equal(t, "3 hours", est.MaxDeliveryDurationText)
	assert.Equal(t, now.Add(3*time.Hour), est.EstimatedDeliveryDate)
	assert.Equal(t, []CategoryWindow{{"Fruit", 60}, {"Meat", 180}}, est.Categories)
}

func TestEstimatorDefaultsWhenEmpty(t *testing.T) {
	var e Estimator
	est := e.Estimate(time.Unix(0, 0), Arabic)
	assert.Equal(t, DefaultDuration, est.MaxDeliveryDuration)
	assert.Equal(t, "1 يوم", est.MaxDeliveryDurationText)
	assert.Empty(t, est.Categories)
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, English, ParseLang("", ""))
	assert.Equal(t, Arabic, ParseLang("ar", ""))
	assert.Equal(t, Arabic, ParseLang("", "ar-EG,ar;q=0.9,en;q=0.5"))
	assert.Equal(t, English, ParseLang("en", "ar"))
	assert.Equal(t, English, ParseLang("", "fr-FR"))
}

func TestProgressOf(t *testing.T) {
	now := time.Date(2026, 5, 5, 12, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	assert.Equal(t, ProgressDelivered, ProgressOf("Delivered", past, now))
	assert.Equal(t, ProgressCanceled, ProgressOf("Canceled", future, now))
	assert.Equal(t, ProgressDelayed, ProgressOf("Shipped", past, now))
	assert.Equal(t, ProgressOnTime, ProgressOf("Not processed", future, now))

	assert.Equal(t, "متأخر", ProgressDelayed.Label(Arabic))
	assert.Equal(t, "On Time", ProgressOnTime.Label(English))
}
