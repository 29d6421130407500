package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quizcast/internal/config"
	"quizcast/internal/domain"
)

// Reporter computes daily accuracy summaries from the distribution log.
type Reporter struct {
	log  DistributionLog
	good float64
	warn float64
}

func NewReporter(log DistributionLog, cfg config.ReportConfig) *Reporter {
	return &Reporter{log: log, good: cfg.GoodThreshold, warn: cfg.WarnThreshold}
}

// Build returns the report for date, or nil when no votes were cast that day.
// A nil report is distinct from a zero-accuracy report.
func (r *Reporter) Build(ctx context.Context, date time.Time) (*domain.Report, error) {
	tallies, err := r.log.Aggregate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", date.Format("2006-01-02"), err)
	}

	report := &domain.Report{Date: date}
	for _, t := range tallies {
		if t.Total == 0 {
			continue
		}
		acc := float64(t.Correct) / float64(t.Total) * 100
		report.Groups = append(report.Groups, domain.ReportGroup{
			Topic:    t.Topic,
			Correct:  t.Correct,
			Total:    t.Total,
			Accuracy: acc,
			Label:    r.label(acc),
		})
		report.Correct += t.Correct
		report.Total += t.Total
	}
	if report.Total == 0 {
		return nil, nil
	}

	sort.Slice(report.Groups, func(i, j int) bool {
		return report.Groups[i].Topic < report.Groups[j].Topic
	})
	report.Accuracy = float64(report.Correct) / float64(report.Total) * 100
	return report, nil
}

func (r *Reporter) label(accuracy float64) string {
	switch {
	case accuracy >= r.good:
		return "good"
	case accuracy >= r.warn:
		return "warning"
	default:
		return "poor"
	}
}
