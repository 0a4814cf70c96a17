package globe

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var home = domain.Coords{Lat: 10, Lng: 20}

func TestStaticLocator(t *testing.T) {
	ctx := context.Background()

	got, err := StaticLocator{Home: home, HasHome: true}.CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, home, got)

	_, err = StaticLocator{}.CurrentPosition(ctx)
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	_, err = StaticLocator{Home: domain.Coords{Lat: 120}, HasHome: true}.CurrentPosition(ctx)
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = StaticLocator{Home: home, HasHome: true}.CurrentPosition(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminalMap_ClickBeforeInitialize(t *testing.T) {
	m := NewTerminalMap()
	assert.ErrorIs(t, m.Click(), ErrMapNotInitialized)
	assert.ErrorIs(t, m.ClickAt(home), ErrMapNotInitialized)
	assert.Contains(t, m.Render(20, 5), "Waiting for your position")
}

func TestTerminalMap_ClickReportsCursor(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(home, 8)

	var clicked []domain.Coords
	m.OnClick(func(at domain.Coords) { clicked = append(clicked, at) })

	require.NoError(t, m.Click())
	m.MoveCursor(1, -2)
	require.NoError(t, m.Click())

	require.Len(t, clicked, 2)
	assert.Equal(t, home, clicked[0])
	step := geo.Step(8)
	assert.InDelta(t, home.Lat+2*step, clicked[1].Lat, 1e-9)
	assert.InDelta(t, home.Lng-2*step, clicked[1].Lng, 1e-9)
}

func TestTerminalMap_ClickAtMovesCursor(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(home, 8)
	var got domain.Coords
	m.OnClick(func(at domain.Coords) { got = at })

	target := domain.Coords{Lat: 11, Lng: 21}
	require.NoError(t, m.ClickAt(target))

	assert.Equal(t, target, got)
	assert.Equal(t, target, m.Cursor())
	assert.Equal(t, home, m.Center())
}

func TestTerminalMap_PanAndZoom(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(home, 8)
	m.AddTileLayer(osmTiles, "© OpenStreetMap contributors")

	target := domain.Coords{Lat: -33.9, Lng: 151.2}
	m.PanTo(target)
	m.SetZoom(15, 2*time.Second)

	assert.Equal(t, target, m.Center())
	assert.Equal(t, target, m.Cursor())
	assert.Equal(t, 15, m.Zoom())
	assert.Equal(t, 2*time.Second, m.LastAnimation())
	url, attr := m.TileLayer()
	assert.Equal(t, osmTiles, url)
	assert.Equal(t, "© OpenStreetMap contributors", attr)
}

const osmTiles = "http://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

func TestTerminalMap_PopupsAreExclusive(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(home, 8)

	first := m.AddMarker(home).BindPopup("Running on June 15", 150)
	first.OpenPopup()
	m.AddMarker(domain.Coords{Lat: 10.1, Lng: 20.1}).BindPopup("Cycling on June 15", 150).OpenPopup()

	markers := m.Markers()
	require.Len(t, markers, 2)
	assert.False(t, markers[0].PopupOpen)
	assert.True(t, markers[1].PopupOpen)
	assert.Equal(t, 150, markers[0].PopupWidth)
	assert.Equal(t, "Running on June 15", markers[0].Popup)
}

func TestTerminalMap_RenderPlacesCursorAndMarkers(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(home, 8)
	m.AddTileLayer(osmTiles, "© OpenStreetMap contributors")
	east := domain.Coords{Lat: home.Lat, Lng: home.Lng + geo.Step(8)}
	m.AddMarker(east).BindPopup("Running on June 15", 150).OpenPopup()
	m.AddMarker(domain.Coords{Lat: 60, Lng: 20})

	out := stripANSI(m.Render(21, 9))
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 10)

	row := []rune(lines[4])
	assert.Equal(t, '+', row[10])
	assert.Equal(t, '◆', row[11])
	assert.Equal(t, 1, strings.Count(out, "◆"), "off-screen marker is not drawn")
	assert.Contains(t, lines[9], "zoom 8")
	assert.Contains(t, lines[9], "0.0 km from center")
	assert.Contains(t, out, "Running on June 15")
	assert.Contains(t, out, "© OpenStreetMap contributors")
}

func TestTerminalMap_RenderReportsCursorDistance(t *testing.T) {
	m := NewTerminalMap()
	m.Initialize(domain.Coords{Lat: 0, Lng: 0}, 0)
	m.MoveCursor(0, 4)

	out := stripANSI(m.Render(40, 9))
	// 4 columns at zoom 0 is 90 degrees of longitude along the equator.
	assert.Contains(t, out, "10007.5 km from center")
}
