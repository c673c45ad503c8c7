// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrSliceSyntax is returned for expressions that are not [i], [a:b] or [a:b:c]
	ErrSliceSyntax = errors.New("invalid slice expression")

	// ErrSliceRange is returned when an index or bound lies outside the value
	ErrSliceRange = errors.New("slice index out of range")

	// ErrSliceStep is returned for a zero step
	ErrSliceStep = errors.New("slice step cannot be zero")
)

// sliceExpr is a parsed bracket expression. Nil bounds were omitted.
type sliceExpr struct {
	index             bool
	start, stop, step *int
}

// parseSlice parses a bracketed expression like "[-2:]" or "[1:3]".
// Only integer indices are accepted.
func parseSlice(expr string) (*sliceExpr, error) {
	if len(expr) < 2 || expr[0] != '[' || expr[len(expr)-1] != ']' {
		return nil, fmt.Errorf("%w: %q", ErrSliceSyntax, expr)
	}

	parts := strings.Split(expr[1:len(expr)-1], ":")
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: %q", ErrSliceSyntax, expr)
	}

	bounds := make([]*int, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrSliceSyntax, part)
		}
		bounds[i] = &n
	}

	if len(parts) == 1 {
		if bounds[0] == nil {
			return nil, fmt.Errorf("%w: %q", ErrSliceSyntax, expr)
		}
		return &sliceExpr{index: true, start: bounds[0]}, nil
	}

	s := &sliceExpr{start: bounds[0], stop: bounds[1]}
	if len(parts) == 3 {
		s.step = bounds[2]
	}
	return s, nil
}

// ApplySlice evaluates a bracketed slice expression against value, counting
// in code points. Indices and bounds outside the value are errors.
func ApplySlice(value, expr string) (string, error) {
	s, err := parseSlice(expr)
	if err != nil {
		return "", err
	}
	return s.apply([]rune(value))
}

func (s *sliceExpr) apply(r []rune) (string, error) {
	n := len(r)

	if s.index {
		i := *s.start
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return "", fmt.Errorf("%w: index %d, length %d", ErrSliceRange, *s.start, n)
		}
		return string(r[i]), nil
	}

	step := 1
	if s.step != nil {
		step = *s.step
	}
	if step == 0 {
		return "", ErrSliceStep
	}

	for _, b := range []*int{s.start, s.stop} {
		if b != nil && (*b > n || *b < -n) {
			return "", fmt.Errorf("%w: bound %d, length %d", ErrSliceRange, *b, n)
		}
	}

	// a step longer than the value selects at most the start element
	if n > 0 {
		step = max(-n, min(step, n))
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}

	start := resolveBound(s.start, n, lower, upper, step < 0)
	stop := resolveBound(s.stop, n, lower, upper, step > 0)

	var out []rune
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, r[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, r[i])
		}
	}
	return string(out), nil
}

// resolveBound clamps a bound into [lower, upper]. An omitted bound becomes
// upper when useUpper is set, lower otherwise.
func resolveBound(b *int, n, lower, upper int, useUpper bool) int {
	if b == nil {
		if useUpper {
			return upper
		}
		return lower
	}
	v := *b
	if v < 0 {
		v += n
		if v < lower {
			v = lower
		}
		return v
	}
	if v > upper {
		v = upper
	}
	return v
}
