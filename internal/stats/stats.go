// Package stats holds the arithmetic behind the feedback dashboards.
package stats

import (
	"math"

	"feedbackManagement/models"
)

// Percent returns count as a percentage of total rounded to one decimal place.
// A zero total yields 0.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Breakdown is a sentiment distribution. Every known sentiment is present in
// both maps, zero when unobserved.
type Breakdown struct {
	Total       int                          `json:"total_feedback"`
	Counts      map[models.Sentiment]int     `json:"sentiment_counts"`
	Percentages map[models.Sentiment]float64 `json:"sentiment_percentages"`
}

// NewBreakdown builds a Breakdown from raw per-sentiment counts. Unknown
// sentiments in counts are ignored.
func NewBreakdown(counts map[models.Sentiment]int) Breakdown {
	b := Breakdown{
		Counts:      make(map[models.Sentiment]int, len(models.Sentiments)),
		Percentages: make(map[models.Sentiment]float64, len(models.Sentiments)),
	}
	for _, s := range models.Sentiments {
		n := counts[s]
		b.Counts[s] = n
		b.Total += n
	}
	for _, s := range models.Sentiments {
		b.Percentages[s] = Percent(b.Counts[s], b.Total)
	}
	return b
}

// Share returns the percentage recorded for s.
func (b Breakdown) Share(s models.Sentiment) float64 {
	return b.Percentages[s]
}

// Trend maps a month number (1-12) to per-sentiment counts.
type Trend map[int]map[models.Sentiment]int

// Add records one feedback item in month. The first item of a month seeds
// every sentiment with zero.
func (t Trend) Add(month int, s models.Sentiment) {
	if month < 1 || month > 12 {
		return
	}
	bucket, ok := t[month]
	if !ok {
		bucket = make(map[models.Sentiment]int, len(models.Sentiments))
		for _, known := range models.Sentiments {
			bucket[known] = 0
		}
		t[month] = bucket
	}
	if s.Valid() {
		bucket[s]++
	}
}
