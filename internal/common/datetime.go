package common

import (
	"sync"
	"time"
)

const (
	DateFormatYYYYMMDD            = "2006-01-02"
	DateFormatYYYYMMDDWithoutDash = "20060102"
	DateFormatYYYYMMDDWithTime    = "2006-01-02 15:04:05"
)

// TimezoneSaoPaulo is the business day of the bank statements.
const TimezoneSaoPaulo = "America/Sao_Paulo"

var (
	location     = time.UTC
	locationOnce sync.Once
)

// SetLocation overrides the business timezone. Only the first call wins.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	locationOnce.Do(func() {
		location = loc
	})
	return nil
}

func GetLocation() *time.Location {
	return location
}

func Now() time.Time {
	return time.Now().In(location)
}

// StartOfDay truncates t to midnight in the business timezone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}

func ParseStringToDatetime(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location)
}

// ParseDateOrDatetime accepts either a plain date or an RFC3339 timestamp.
func ParseDateOrDatetime(value string) (time.Time, error) {
	if t, err := ParseStringToDatetime(DateFormatYYYYMMDD, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidFormatDate
	}
	return t.In(location), nil
}
