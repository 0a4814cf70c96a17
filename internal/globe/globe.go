// Package globe defines the map and position capabilities the session
// controller drives, along with the in-process adapters used by the TUI and
// scripted replays.
package globe

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
)

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrMapNotInitialized   = errors.New("map not initialized")
)

// Locator reports the device position once per request.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Coords, error)
}

// ClickHandler receives the coordinate under a map click.
type ClickHandler func(at domain.Coords)

// Map is the slippy-map surface: a view with tiles, markers and click events.
type Map interface {
	Initialize(center domain.Coords, zoom int)
	AddTileLayer(urlTemplate, attribution string)
	AddMarker(at domain.Coords) MarkerHandle
	PanTo(at domain.Coords)
	SetZoom(level int, animation time.Duration)
	OnClick(handler ClickHandler)
}

// MarkerHandle is a placed marker. BindPopup returns the handle so calls
// can be chained.
type MarkerHandle interface {
	BindPopup(text string, maxWidth int) MarkerHandle
	OpenPopup()
}

// StaticLocator answers with a fixed home coordinate. Without one, or with
// an invalid one, the position is unavailable.
type StaticLocator struct {
	Home    domain.Coords
	HasHome bool
}

func (l StaticLocator) CurrentPosition(ctx context.Context) (domain.Coords, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coords{}, err
	}
	if !l.HasHome {
		return domain.Coords{}, ErrLocationUnavailable
	}
	if err := l.Home.Validate(); err != nil {
		return domain.Coords{}, errors.Join(ErrLocationUnavailable, err)
	}
	return l.Home, nil
}
