package schedule

import (
	"strings"
	"time"
)

// Slot is one recurring weekly class: a teacher teaching a subject to a group
// on a given weekday and starting hour.
type Slot struct {
	ID        int64
	TeacherID int64
	GroupID   int64
	SubjectID int64
	Day       Day
	Hour      Hour
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Day string

const (
	DayMonday    Day = "monday"
	DayTuesday   Day = "tuesday"
	DayWednesday Day = "wednesday"
	DayThursday  Day = "thursday"
	DayFriday    Day = "friday"
)

var DayValues = []string{
	string(DayMonday),
	string(DayTuesday),
	string(DayWednesday),
	string(DayThursday),
	string(DayFriday),
}

var dayWeekdays = map[Day]time.Weekday{
	DayMonday:    time.Monday,
	DayTuesday:   time.Tuesday,
	DayWednesday: time.Wednesday,
	DayThursday:  time.Thursday,
	DayFriday:    time.Friday,
}

// Valid returns true when the day is one of the five teaching days.
func (d Day) Valid() bool {
	_, ok := dayWeekdays[d]
	return ok
}

// Weekday maps the day to time.Weekday.
func (d Day) Weekday() time.Weekday {
	return dayWeekdays[d]
}

// DayFromWeekday returns the teaching day for w; ok is false on weekends.
func DayFromWeekday(w time.Weekday) (Day, bool) {
	for d, wd := range dayWeekdays {
		if wd == w {
			return d, true
		}
	}
	return "", false
}

// Hour is the starting hour of a class, "07:00" through "19:00".
type Hour string

var HourValues = []string{
	"07:00", "08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

func (h Hour) Valid() bool {
	for _, v := range HourValues {
		if string(h) == v {
			return true
		}
	}
	return false
}

// ParseDay accepts the canonical names and the Spanish names used by the
// original dashboards (Lunes..Viernes), case-insensitively.
func ParseDay(s string) (Day, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "lunes":
		return DayMonday, true
	case "tuesday", "martes":
		return DayTuesday, true
	case "wednesday", "miércoles", "miercoles":
		return DayWednesday, true
	case "thursday", "jueves":
		return DayThursday, true
	case "friday", "viernes":
		return DayFriday, true
	}
	return "", false
}
