package validator

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected, so callers can `return errs.Err()`.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// DateRange checks a pair of required YYYY-MM-DD fields with start <= end and
// records any problem under the given field names.
func DateRange(errs *ValidationErrors, startField, start, endField, end string) (time.Time, time.Time) {
	var startDate, endDate time.Time
	var startOK, endOK bool

	if IsEmpty(start) {
		errs.Add(startField, startField+" is required")
	} else if startDate, startOK = IsValidDate(start); !startOK {
		errs.Add(startField, startField+" must be in YYYY-MM-DD format")
	}

	if IsEmpty(end) {
		errs.Add(endField, endField+" is required")
	} else if endDate, endOK = IsValidDate(end); !endOK {
		errs.Add(endField, endField+" must be in YYYY-MM-DD format")
	}

	if startOK && endOK && startDate.After(endDate) {
		errs.Add(endField, endField+" must not be before "+startField)
	}

	return startDate, endDate
}
