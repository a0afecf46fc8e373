package models

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidDate   = errors.New("invalid date")
)

// Period is a range of days, both ends stored as unix time of the day start in UTC
type Period struct {
	Start int64 `gorm:"not null;default:0"`
	End   int64 `gorm:"not null;default:0"`
}

// ParsePeriod reads two 2006-01-02 dates, end must not be before start
func ParsePeriod(start, end string) (Period, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	if e.Before(s) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: s.Unix(), End: e.Unix()}, nil
}

// ParseDate returns the start of the given day, today when empty
func ParseDate(date string) (int64, error) {
	if date == "" {
		return time.Now().UTC().Truncate(24 * time.Hour).Unix(), nil
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return d.Unix(), nil
}

func FormatDate(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(DateLayout)
}

func (p Period) StartDate() string {
	return FormatDate(p.Start)
}

func (p Period) EndDate() string {
	return FormatDate(p.End)
}

func (p Period) Days() int {
	if p.Start == 0 || p.End < p.Start {
		return 0
	}
	return int((p.End-p.Start)/86400) + 1
}
