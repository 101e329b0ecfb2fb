package form

import (
	"errors"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		typ      string
		raw      string
		want     any
		wantCode string
	}{
		{TypeString, "Alice", "Alice", ""},
		{TypeString, "", "", ""},
		{TypeInteger, "42", int64(42), ""},
		{TypeInteger, " -7 ", int64(-7), ""},
		{TypeInteger, "abc", nil, CodeInvalidInteger},
		{TypeInteger, "4.2", nil, CodeInvalidInteger},
		{TypeNumber, "4.25", 4.25, ""},
		{TypeNumber, "1e3", 1000.0, ""},
		{TypeNumber, "NaN", nil, CodeInvalidNumber},
		{TypeNumber, "x", nil, CodeInvalidNumber},
		{TypeBoolean, "Да", true, ""},
		{TypeBoolean, "Yes", true, ""},
		{TypeBoolean, "yes", nil, CodeInvalidBoolean},
		{TypeBoolean, " No ", nil, CodeInvalidBoolean},
		{TypeBoolean, "Нет", false, ""},
		{TypeBoolean, "No", false, ""},
		{TypeBoolean, "maybe", nil, CodeInvalidBoolean},
		{"uuid", "anything", "anything", ""},
	}

	for _, tt := range tests {
		got, err := Format(tt.typ, tt.raw)
		if tt.wantCode != "" {
			ie, ok := AsInputError(err)
			if !ok || ie.Code != tt.wantCode || !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Format(%q, %q) error = %v, want code %s", tt.typ, tt.raw, err, tt.wantCode)
			}
			continue
		}
		if err != nil {
			t.Errorf("Format(%q, %q) unexpected error: %v", tt.typ, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%q, %q) = %#v, want %#v", tt.typ, tt.raw, got, tt.want)
		}
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		value any
		ok    bool
	}{
		{"01.02.2024", true},
		{"29.02.2024", true},
		{"31.02.2024", false},
		{"29.02.2023", false},
		{"1.2.2024", false},
		{"2024-02-01", false},
		{"01.02.24", false},
		{int64(1), false},
	}

	for _, tt := range tests {
		err := Validate("date", tt.value)
		if tt.ok && err != nil {
			t.Errorf("Validate(date, %v) unexpected error: %v", tt.value, err)
		}
		if !tt.ok && !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("Validate(date, %v) = %v, want ErrFormatMismatch", tt.value, err)
		}
	}
}

func TestValidateUnknownFormatPasses(t *testing.T) {
	for _, format := range []string{"", "email", "phone"} {
		if err := Validate(format, "whatever"); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", format, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		typ  string
		in   any
		want any
	}{
		{TypeInteger, 5, int64(5)},
		{TypeInteger, 5.0, int64(5)},
		{TypeInteger, 5.5, 5.5},
		{TypeNumber, 3, 3.0},
		{TypeNumber, int64(3), 3.0},
		{TypeString, "s", "s"},
	}
	for _, tt := range tests {
		if got := normalize(tt.typ, tt.in); got != tt.want {
			t.Errorf("normalize(%s, %#v) = %#v, want %#v", tt.typ, tt.in, got, tt.want)
		}
	}
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		format  string
		in      any
		want    any
		wantErr bool
	}{
		{"string as is", TypeString, "", "x", "x", false},
		{"integer on string", TypeString, "", 5, "5", false},
		{"float on string", TypeString, "", 2.5, "2.5", false},
		{"yaml date on date", TypeString, "date", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "02.01.2024", false},
		{"iso text on date", TypeString, "date", "2024-01-02", nil, true},
		{"whole float on integer", TypeInteger, "", 3.0, int64(3), false},
		{"fraction on integer", TypeInteger, "", 2.5, nil, true},
		{"numeric text on integer", TypeInteger, "", "12", int64(12), false},
		{"integer on number", TypeNumber, "", 4, 4.0, false},
		{"token on boolean", TypeBoolean, "", "Да", true, false},
		{"integer on boolean", TypeBoolean, "", 1, nil, true},
		{"list on string", TypeString, "", []any{"a"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := defaultValue(tt.typ, tt.format, tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("defaultValue = %#v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("defaultValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("defaultValue = %#v, want %#v", got, tt.want)
			}
		})
	}
}
