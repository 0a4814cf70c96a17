package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// Kinds lists the workout kinds in display order.
var Kinds = []Kind{KindRunning, KindCycling}

// ValidKinds is the canonical set of accepted workout kind strings.
var ValidKinds = map[string]bool{
	"running": true, "cycling": true,
}

var titleCase = cases.Title(language.English)

// Label returns the capitalized display name of the kind, e.g. "Running".
func (k Kind) Label() string {
	return titleCase.String(string(k))
}

// Icon returns the glyph used for the kind in list entries.
func (k Kind) Icon() string {
	if k == KindCycling {
		return "🚴"
	}
	return "🏃"
}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !ValidKinds[v] {
		return "", fmt.Errorf("unknown workout type %q (want running or cycling)", s)
	}
	return Kind(v), nil
}

// ZoomPolicy decides what happens to a pending deferred zoom when another
// workout is selected before it fires.
type ZoomPolicy string

const (
	ZoomStack  ZoomPolicy = "stack"
	ZoomLatest ZoomPolicy = "latest"
)
