package types

import (
	"fmt"
	"time"
)

// ReportPeriod is the time window of a cost report
type ReportPeriod string

const (
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
)

// IsValid checks if the report period is valid
func (p ReportPeriod) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// Duration returns the length of the reporting window.
func (p ReportPeriod) Duration() time.Duration {
	if p == PeriodMonth {
		return 30 * 24 * time.Hour
	}
	return 7 * 24 * time.Hour
}

// String returns the string representation of the report period
func (p ReportPeriod) String() string {
	return string(p)
}

// ParseReportPeriod parses a string into a ReportPeriod
func ParseReportPeriod(s string) (ReportPeriod, error) {
	p := ReportPeriod(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid report period: %s", s)
	}
	return p, nil
}
