package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsEmptyPtr(t *testing.T) {
	blank := "  "
	value := "x"
	if !IsEmptyPtr(nil) {
		t.Errorf("IsEmptyPtr(nil) = false, want true")
	}
	if !IsEmptyPtr(&blank) {
		t.Errorf("IsEmptyPtr(blank) = false, want true")
	}
	if IsEmptyPtr(&value) {
		t.Errorf("IsEmptyPtr(%q) = true, want false", value)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidLocalDateTime(t *testing.T) {
	want := time.Date(2024, 5, 6, 8, 30, 0, 0, time.UTC)
	valid := []string{"2024-05-06T08:30", "2024-05-06T08:30:00", "2024-05-06 08:30", "2024-05-06 08:30:00", "2024-05-06T08:30:00Z"}
	for _, s := range valid {
		got, ok := IsValidLocalDateTime(s)
		if !ok {
			t.Errorf("IsValidLocalDateTime(%q) = false, want true", s)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("IsValidLocalDateTime(%q) = %v, want %v", s, got, want)
		}
	}
	invalid := []string{"", "08:30", "2024-05-06", "2024-05-06T25:00"}
	for _, s := range invalid {
		if _, ok := IsValidLocalDateTime(s); ok {
			t.Errorf("IsValidLocalDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"08:00", "23:59", "08:00:30"}
	invalid := []string{"", "24:00", "8am", "2024-05-06T08:00"}
	for _, s := range valid {
		if _, ok := IsValidClock(s); !ok {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidClock(s); ok {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "shift_id", Message: "shift_id is required"},
		{Field: "start_time", Message: "start_time is required"},
	}
	got := errs.Error()
	want := "shift_id: shift_id is required; start_time: start_time is required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
	if !errs.Has("shift_id") || errs.Has("remark_text") {
		t.Errorf("ValidationErrors.Has() mismatch")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "accuracy", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"latitude": "invalid", "accuracy": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
