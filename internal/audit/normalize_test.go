package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tickly/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestNormalize_DropsEqualValues(t *testing.T) {
	fields := []domain.FieldChange{
		{Field: "title", PreviousValue: strPtr("old"), NewValue: strPtr("new")},
		{Field: "status", PreviousValue: strPtr("OPEN"), NewValue: strPtr("OPEN")},
		{Field: "priority", PreviousValue: nil, NewValue: strPtr("")},
	}

	kept := Normalize(fields)

	assert.Len(t, kept, 1)
	assert.Equal(t, "title", kept[0].Field)
}

func TestNormalize_NilEqualsEmptyString(t *testing.T) {
	fields := []domain.FieldChange{
		{Field: "description", PreviousValue: nil, NewValue: strPtr("")},
		{Field: "description2", PreviousValue: strPtr(""), NewValue: nil},
	}

	assert.Empty(t, Normalize(fields))
}

func TestNormalize_DateFieldsCompareToTheSecond(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	withNanos := base.Add(250 * time.Millisecond)

	fields := []domain.FieldChange{
		{
			Field:         "archivedAt",
			PreviousValue: Stringify(base),
			NewValue:      Stringify(withNanos),
		},
	}

	assert.Empty(t, Normalize(fields), "sub-second drift should not produce a change")

	fields[0].NewValue = Stringify(base.Add(time.Second))
	assert.Len(t, Normalize(fields), 1)
}

func TestNormalize_UnparsableDatesNormalizeToZero(t *testing.T) {
	fields := []domain.FieldChange{
		{Field: "createdAt", PreviousValue: strPtr("not-a-date"), NewValue: strPtr("also garbage")},
	}
	assert.Empty(t, Normalize(fields))

	fields = []domain.FieldChange{
		{Field: "createdAt", PreviousValue: strPtr("not-a-date"), NewValue: Stringify(time.Now())},
	}
	assert.Len(t, Normalize(fields), 1)
}

func TestIsDateField(t *testing.T) {
	assert.True(t, isDateField("archivedAt"))
	assert.True(t, isDateField("modification_date"))
	assert.True(t, isDateField("created_at"))
	assert.True(t, isDateField("dueDate"))
	assert.False(t, isDateField("title"))
	assert.False(t, isDateField("status"))
}

func TestStringify(t *testing.T) {
	assert.Nil(t, Stringify(nil))
	assert.Nil(t, Stringify((*string)(nil)))
	assert.Nil(t, Stringify((*time.Time)(nil)))
	assert.Nil(t, Stringify((*int64)(nil)))

	assert.Equal(t, "hello", *Stringify("hello"))
	assert.Equal(t, "a,b,c", *Stringify([]string{"a", "b", "c"}))

	id := int64(42)
	assert.Equal(t, "42", *Stringify(&id))

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-01T12:00:00Z", *Stringify(ts))
}

func TestChange(t *testing.T) {
	change := Change("title", "before", "after")
	assert.Equal(t, "title", change.Field)
	assert.Equal(t, "before", *change.PreviousValue)
	assert.Equal(t, "after", *change.NewValue)

	change = Change("structureId", nil, "7")
	assert.Nil(t, change.PreviousValue)
	assert.Equal(t, "7", *change.NewValue)
}
