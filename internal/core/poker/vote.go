// Package poker defines the estimation domain: vote values, votes, tasks and
// the average computed when a task is revealed.
package poker

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single card played by a voter. It is either a numeric estimate
// or a non-numeric token such as "?" or "∞".
type Value struct {
	raw     string
	num     float64
	numeric bool
}

// Number returns a numeric vote value.
func Number(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64), num: f, numeric: true}
}

// Token returns a non-numeric vote value.
func Token(s string) Value {
	return Value{raw: s}
}

// ParseValue turns a card label into a Value. Labels that parse as a finite
// float are numeric; everything else is kept verbatim as a token.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Token(s)
	}
	return Number(f)
}

// Float returns the numeric value and true, or zero and false for tokens.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// IsNumeric reports whether the value takes part in the average.
func (v Value) IsNumeric() bool { return v.numeric }

// String returns the card label as shown to users.
func (v Value) String() string { return v.raw }

// Vote is one participant's estimate for a task.
type Vote struct {
	Voter string
	Value Value
}

// Average returns the arithmetic mean of the numeric votes, or nil when no
// vote is numeric. A zero vote counts.
func Average(votes []Vote) *float64 {
	var (
		sum   float64
		count int
	)
	for _, v := range votes {
		f, ok := v.Value.Float()
		if !ok {
			continue
		}
		sum += f
		count++
	}

	if count == 0 {
		return nil
	}

	avg := sum / float64(count)
	return &avg
}
