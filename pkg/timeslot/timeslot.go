// Package timeslot owns the booking-time-slot conventions: whole-hour slots
// labeled "H:00 - H+1:00", calendar dates kept timezone-naive as strings,
// and the next-day rollover rule. The rollover rule lives here and only
// here; the admission resolver consumes a pre-resolved (date, hour) pair
// and never re-derives it.
package timeslot

import (
	"fmt"
	"time"
)

// DateFormat is the station-local calendar date layout.
const DateFormat = "2006-01-02"

const HoursPerDay = 24

// Label renders an hour slot the way it is presented to riders.
func Label(hour int) string {
	return fmt.Sprintf("%d:00 - %d:00", hour, hour+1)
}

// Date renders t's calendar date in station-local terms.
func Date(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate parses a station-local calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// IsPast reports whether date is strictly before now's calendar date.
// The comparison is date-only; any hour of today is not past.
func IsPast(date string, now time.Time) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	today, _ := ParseDate(Date(now))
	return d.Before(today), nil
}

// Resolve maps a requested hour to an unambiguous (date, hour) pair.
// Hours at or after the current hour belong to today; hours before it are
// implicitly next-day, matching how the slot picker presents them.
func Resolve(now time.Time, hour int) (string, int) {
	if hour < now.Hour() {
		return Date(now.AddDate(0, 0, 1)), hour
	}
	return Date(now), hour
}

// Option is one bookable slot as presented to a rider picking a time.
type Option struct {
	Hour    int    `json:"hour"`
	Date    string `json:"date"`
	Label   string `json:"label"`
	NextDay bool   `json:"next_day"`
}

// Options lists the 24 hour slots starting from the current hour, rolling
// hours already past today into tomorrow with a "(next-day)" label.
func Options(now time.Time) []Option {
	options := make([]Option, 0, HoursPerDay)
	today := Date(now)
	tomorrow := Date(now.AddDate(0, 0, 1))

	for hour := now.Hour(); hour < HoursPerDay; hour++ {
		options = append(options, Option{
			Hour:  hour,
			Date:  today,
			Label: Label(hour),
		})
	}
	for hour := 0; hour < now.Hour(); hour++ {
		options = append(options, Option{
			Hour:    hour,
			Date:    tomorrow,
			Label:   Label(hour) + " (next-day)",
			NextDay: true,
		})
	}

	return options
}
