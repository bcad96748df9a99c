package sim

import (
	"errors"
	"testing"
)

func TestParseFreeFall(t *testing.T) {
	p, err := ParseFreeFall(" 50 ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Height != 50 || p.Velocity != 0 {
		t.Errorf("unexpected params: %+v", p)
	}

	p, err = ParseFreeFall("12.5", "-3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Height != 12.5 || p.Velocity != -3 {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestParseFreeFallErrors(t *testing.T) {
	tests := []struct {
		name     string
		height   string
		velocity string
		field    string
		wrapped  error
	}{
		{"letters", "abc", "0", "height", ErrInputFormat},
		{"empty height", "", "0", "height", ErrMissingData},
		{"bad velocity", "10", "fast", "velocity", ErrInputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFreeFall(tt.height, tt.velocity)
			if !errors.Is(err, tt.wrapped) {
				t.Fatalf("expected %v, got %v", tt.wrapped, err)
			}
			var perr *ParamError
			if !errors.As(err, &perr) || perr.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestParseUniform(t *testing.T) {
	p, err := ParseUniform("0", "", "10", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Velocity != 0 || p.Target == nil || *p.Target != 10 || p.Duration != 5 {
		t.Errorf("unexpected params: %+v", p)
	}

	p, err = ParseUniform("1", "5", " ", "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Target != nil {
		t.Errorf("expected no target, got %v", *p.Target)
	}
}

func TestParseUniformErrors(t *testing.T) {
	tests := []struct {
		name                  string
		start, v, target, dur string
		wrapped               error
	}{
		{"bad start", "x", "1", "", "5", ErrInputFormat},
		{"bad target", "0", "1", "far", "5", ErrInputFormat},
		{"missing duration", "0", "1", "", "", ErrMissingData},
		{"bad duration", "0", "1", "", "5s", ErrInputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUniform(tt.start, tt.v, tt.target, tt.dur)
			if !errors.Is(err, tt.wrapped) {
				t.Errorf("expected %v, got %v", tt.wrapped, err)
			}
		})
	}
}

func TestParamErrorMessage(t *testing.T) {
	err := invalid("height", "must be zero or positive")
	expected := "height: must be zero or positive"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("target", " 12.5 ")
	if err != nil || v != 12.5 {
		t.Errorf("expected 12.5, got %f (%v)", v, err)
	}
	if _, err := ParseValue("target", ""); !errors.Is(err, ErrMissingData) {
		t.Errorf("expected ErrMissingData, got %v", err)
	}
	if _, err := ParseValue("target", "abc"); !errors.Is(err, ErrInputFormat) {
		t.Errorf("expected ErrInputFormat, got %v", err)
	}
}
