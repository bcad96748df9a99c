package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumber reads a decimal from user text. Empty text is reported through
// ok=false so callers can apply their own default.
func parseNumber(field, text string) (v float64, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false, &ParamError{
			Field:   field,
			Reason:  fmt.Sprintf("%q is not a valid number", text),
			Wrapped: ErrInputFormat,
		}
	}
	return v, true, nil
}

func requireNumber(field, text string) (float64, error) {
	v, ok, err := parseNumber(field, text)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ParamError{Field: field, Reason: "a value is required", Wrapped: ErrMissingData}
	}
	return v, nil
}

// ParseFreeFall builds free-fall parameters from form text. An empty
// velocity means a drop from rest.
func ParseFreeFall(height, velocity string) (FreeFallParams, error) {
	h, err := requireNumber("height", height)
	if err != nil {
		return FreeFallParams{}, err
	}
	v, _, err := parseNumber("velocity", velocity)
	if err != nil {
		return FreeFallParams{}, err
	}
	return FreeFallParams{Height: h, Velocity: v}, nil
}

// ParseUniform builds uniform-motion parameters from form text. Velocity and
// target are optional.
func ParseUniform(start, velocity, target, duration string) (UniformParams, error) {
	x0, err := requireNumber("start", start)
	if err != nil {
		return UniformParams{}, err
	}
	v, _, err := parseNumber("velocity", velocity)
	if err != nil {
		return UniformParams{}, err
	}
	xf, hasTarget, err := parseNumber("target", target)
	if err != nil {
		return UniformParams{}, err
	}
	d, err := requireNumber("duration", duration)
	if err != nil {
		return UniformParams{}, err
	}

	p := UniformParams{Start: x0, Velocity: v, Duration: d}
	if hasTarget {
		p.Target = &xf
	}
	return p, nil
}

// ParseValue reads one required number, for forms that feed the calculators
// rather than a driver.
func ParseValue(field, text string) (float64, error) {
	return requireNumber(field, text)
}
