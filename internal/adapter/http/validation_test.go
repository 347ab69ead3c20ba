package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		RunID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{RunID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{RunID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !hasFieldDetail(ToFieldErrors(err), "RunID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestYearMonthValidation(t *testing.T) {
	type P struct {
		Month string `validate:"omitempty,yearmonth"`
	}
	cv := NewValidator()

	for _, s := range []string{"", "2024-01", "2024-12", "1999-06"} {
		if err := cv.Validate(P{Month: s}); err != nil {
			t.Fatalf("expected yearmonth OK for %q, got %v", s, err)
		}
	}
	for _, s := range []string{
		"2024-00",    // month zero
		"2024-13",    // month thirteen
		"2024-1",     // missing zero padding
		"2024-03-15", // full date, not a month
		"202403",     // no separator
		"abcd-ef",    // not numeric
	} {
		err := cv.Validate(P{Month: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !hasFieldDetail(ToFieldErrors(err), "Month", "YYYY-MM") {
			t.Fatalf("expected yearmonth message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

func TestToFieldErrors_RangeTags(t *testing.T) {
	type P struct {
		Limit int `validate:"gte=1,lte=1000"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Limit: 0})
	if err == nil {
		t.Fatalf("expected gte error")
	}
	if !hasFieldDetail(ToFieldErrors(err), "Limit", "greater than or equal to 1") {
		t.Fatalf("expected gte message, got %+v", ToFieldErrors(err))
	}

	err = cv.Validate(P{Limit: 2000})
	if err == nil {
		t.Fatalf("expected lte error")
	}
	if !hasFieldDetail(ToFieldErrors(err), "Limit", "less than or equal to 1000") {
		t.Fatalf("expected lte message, got %+v", ToFieldErrors(err))
	}
}
