package schedule

import "errors"

var (
	ErrSlotNotFound        = errors.New("schedule slot not found")
	ErrTeacherDoubleBooked = errors.New("teacher already has a class at this day and hour")
	ErrGroupDoubleBooked   = errors.New("group already has a class at this day and hour")
)
