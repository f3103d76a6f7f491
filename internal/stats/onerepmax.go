// Package stats derives one-rep-max estimates and progress figures from a user's
// recorded lifts and workout results. Everything here is a pure function of its input.
package stats

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// ErrNoMaxAvailable is returned when no positive one-rep max can be determined.
var ErrNoMaxAvailable = errors.New("no one-rep max available")

var (
	// repMaxMarker finds "RM" not embedded in a word, so "Farmer carry" is not a rep-max label.
	repMaxMarker  = regexp.MustCompile(`(?i)(?:^|[^a-z])rm`)
	leadingDigits = regexp.MustCompile(`^\s*(\d+)`)
)

// EstimateOneRepMax returns the Epley estimate for weight lifted for reps.
// When reps is absent and the rep scheme is an RM label, the count is the scheme's
// leading integer ("5RM", "5RMs", "3x5RM" read as 5, 5 and 3).
// A single rep is exact. Returns nil when there is no load or no usable rep count.
func EstimateOneRepMax(weight *float64, reps *int, repScheme string) *float64 {
	if weight == nil || *weight <= 0 || !finite(*weight) {
		return nil
	}
	n := 0
	if reps != nil && *reps > 0 {
		n = *reps
	} else if repMaxMarker.MatchString(repScheme) {
		if m := leadingDigits.FindStringSubmatch(repScheme); m != nil {
			n, _ = strconv.Atoi(m[1])
		}
	}
	switch {
	case n == 1:
		w := *weight
		return &w
	case n > 1:
		est := round(*weight*(1+float64(n)/30), 2)
		if !finite(est) {
			return nil
		}
		return &est
	default:
		return nil
	}
}

// round keeps v as is when scaling would overflow; such values have no fraction left.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	if !finite(v * p) {
		return v
	}
	return math.Round(v*p) / p
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
