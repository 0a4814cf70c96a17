package globe

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/geo"
	"github.com/charmbracelet/lipgloss"
)

const (
	glyphCursor = "+"
	glyphMarker = "◆"
	glyphGrid   = "·"
)

// pixelsPerCell converts a popup's pixel width into terminal columns.
const pixelsPerCell = 6

var (
	styleGrid       = lipgloss.NewStyle().Foreground(lipgloss.Color("#504945"))
	styleMarker     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c")).Bold(true)
	styleMarkerOpen = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f")).Bold(true)
	styleCursor     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleFooter     = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	stylePopup      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ebdbb2")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fabd2f")).
			Padding(0, 1)
)

// Marker is a snapshot of a marker placed on a TerminalMap.
type Marker struct {
	At         domain.Coords
	Popup      string
	PopupWidth int
	PopupOpen  bool
}

type terminalMarker struct {
	m      *TerminalMap
	marker *Marker
}

func (h *terminalMarker) BindPopup(text string, maxWidth int) MarkerHandle {
	h.marker.Popup = text
	h.marker.PopupWidth = maxWidth
	return h
}

// OpenPopup shows this marker's popup and closes any other.
func (h *terminalMarker) OpenPopup() {
	for _, other := range h.m.markers {
		other.PopupOpen = false
	}
	h.marker.PopupOpen = true
}

// TerminalMap is a Map drawn on a character grid. The user moves a
// crosshair cursor and Click raises the click event at its position.
type TerminalMap struct {
	initialized bool
	center      domain.Coords
	cursor      domain.Coords
	zoom        int
	animation   time.Duration

	tileURL     string
	attribution string

	markers []*Marker
	onClick ClickHandler
}

func NewTerminalMap() *TerminalMap {
	return &TerminalMap{}
}

func (m *TerminalMap) Initialize(center domain.Coords, zoom int) {
	m.initialized = true
	m.center = center
	m.cursor = center
	m.zoom = zoom
}

func (m *TerminalMap) AddTileLayer(urlTemplate, attribution string) {
	m.tileURL = urlTemplate
	m.attribution = attribution
}

func (m *TerminalMap) AddMarker(at domain.Coords) MarkerHandle {
	marker := &Marker{At: at}
	m.markers = append(m.markers, marker)
	return &terminalMarker{m: m, marker: marker}
}

// PanTo recenters the view and brings the cursor along.
func (m *TerminalMap) PanTo(at domain.Coords) {
	m.center = at
	m.cursor = at
}

func (m *TerminalMap) SetZoom(level int, animation time.Duration) {
	m.zoom = level
	m.animation = animation
}

func (m *TerminalMap) OnClick(handler ClickHandler) {
	m.onClick = handler
}

// Click raises the click event at the cursor.
func (m *TerminalMap) Click() error {
	if !m.initialized {
		return ErrMapNotInitialized
	}
	if m.onClick != nil {
		m.onClick(m.cursor)
	}
	return nil
}

// ClickAt moves the cursor to at and clicks there.
func (m *TerminalMap) ClickAt(at domain.Coords) error {
	if !m.initialized {
		return ErrMapNotInitialized
	}
	m.cursor = at
	return m.Click()
}

// MoveCursor shifts the cursor by whole grid cells at the current zoom.
func (m *TerminalMap) MoveCursor(dRows, dCols int) {
	if !m.initialized {
		return
	}
	m.cursor = geo.Offset(m.cursor, m.zoom, dRows, dCols)
}

// Recenter pans the view to the cursor without moving it.
func (m *TerminalMap) Recenter() {
	m.center = m.cursor
}

func (m *TerminalMap) Initialized() bool             { return m.initialized }
func (m *TerminalMap) Center() domain.Coords         { return m.center }
func (m *TerminalMap) Cursor() domain.Coords         { return m.cursor }
func (m *TerminalMap) Zoom() int                     { return m.zoom }
func (m *TerminalMap) LastAnimation() time.Duration  { return m.animation }
func (m *TerminalMap) TileLayer() (url, attr string) { return m.tileURL, m.attribution }

// Markers returns copies of the placed markers in placement order.
func (m *TerminalMap) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	for i, marker := range m.markers {
		out[i] = *marker
	}
	return out
}

// Render draws the view as a w x h grid followed by a status footer, an
// open popup if any, and the tile attribution.
func (m *TerminalMap) Render(w, h int) string {
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	if !m.initialized {
		return styleFooter.Render("Waiting for your position…")
	}

	grid := make([][]string, h)
	for r := range grid {
		grid[r] = make([]string, w)
		for c := range grid[r] {
			if r%4 == 0 && c%8 == 0 {
				grid[r][c] = styleGrid.Render(glyphGrid)
			} else {
				grid[r][c] = " "
			}
		}
	}

	var open *Marker
	for _, marker := range m.markers {
		col, row, ok := geo.Project(m.center, marker.At, m.zoom, w, h)
		if !ok {
			continue
		}
		style := styleMarker
		if marker.PopupOpen {
			style = styleMarkerOpen
			open = marker
		}
		grid[row][col] = style.Render(glyphMarker)
	}
	if col, row, ok := geo.Project(m.center, m.cursor, m.zoom, w, h); ok {
		grid[row][col] = styleCursor.Render(glyphCursor)
	}

	var b strings.Builder
	for r, cells := range grid {
		b.WriteString(strings.Join(cells, ""))
		if r < len(grid)-1 {
			b.WriteByte('\n')
		}
	}

	km := geo.HaversineKm(m.center, m.cursor)
	b.WriteByte('\n')
	b.WriteString(styleFooter.Render(fmt.Sprintf("zoom %d · %s · %.1f km from center", m.zoom, m.cursor, km)))
	if open != nil {
		b.WriteByte('\n')
		b.WriteString(renderPopup(open))
	}
	if m.attribution != "" {
		b.WriteByte('\n')
		b.WriteString(styleFooter.Render(m.attribution))
	}
	return b.String()
}

func renderPopup(marker *Marker) string {
	style := stylePopup
	if cells := marker.PopupWidth / pixelsPerCell; cells > 0 {
		style = style.MaxWidth(cells + 4)
	}
	return style.Render(marker.Popup)
}
