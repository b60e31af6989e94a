package audit

import (
	"fmt"
	"strings"
	"time"

	"tickly/internal/domain"
)

// Timestamp layouts accepted when comparing date-suffixed fields. Callers
// stringify time.Time with RFC3339Nano, but values that went through JSON or
// an earlier audit row may carry any of these shapes.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
}

// Normalize drops every candidate whose previous and new values are equal.
// Fields with a date/time naming convention compare as timestamps truncated
// to whole seconds; everything else compares as opaque strings with nil
// treated as empty for the comparison only.
func Normalize(fields []domain.FieldChange) []domain.FieldChange {
	var kept []domain.FieldChange
	for _, f := range fields {
		if isDateField(f.Field) {
			if !timesEqual(f.PreviousValue, f.NewValue) {
				kept = append(kept, f)
			}
			continue
		}
		if derefOrEmpty(f.PreviousValue) != derefOrEmpty(f.NewValue) {
			kept = append(kept, f)
		}
	}
	return kept
}

func isDateField(name string) bool {
	return strings.HasSuffix(name, "At") || strings.HasSuffix(name, "Date") ||
		strings.HasSuffix(name, "_at") || strings.HasSuffix(name, "_date")
}

// timesEqual compares two stringified timestamps truncated to the second.
// Unparsable or absent values normalize to the zero time, so two bad values
// are equal and a bad value differs from any good one.
func timesEqual(prev, next *string) bool {
	return parseTime(prev).Truncate(time.Second).Equal(parseTime(next).Truncate(time.Second))
}

func parseTime(v *string) time.Time {
	if v == nil || *v == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func derefOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Stringify renders an attribute value the way the audit trail stores it:
// a flat string with no type fidelity. nil pointers stay nil.
func Stringify(v interface{}) *string {
	if v == nil {
		return nil
	}
	var s string
	switch value := v.(type) {
	case string:
		s = value
	case *string:
		if value == nil {
			return nil
		}
		s = *value
	case time.Time:
		s = value.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if value == nil {
			return nil
		}
		s = value.UTC().Format(time.RFC3339Nano)
	case []string:
		s = strings.Join(value, ",")
	case *int64:
		if value == nil {
			return nil
		}
		s = fmt.Sprintf("%d", *value)
	default:
		s = fmt.Sprintf("%v", value)
	}
	return &s
}

// Change builds one candidate pair from raw attribute values.
func Change(field string, previous, next interface{}) domain.FieldChange {
	return domain.FieldChange{
		Field:         field,
		PreviousValue: Stringify(previous),
		NewValue:      Stringify(next),
	}
}
