package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pinlog/internal/cli/formatter"
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/geo"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minZoom = 0
	maxZoom = 18

	// mapFooterLines is the room Render needs below the grid: status, an
	// open popup (three lines with its border) and the attribution.
	mapFooterLines = 5
)

type focusArea int

const (
	focusMap focusArea = iota
	focusList
)

type homeKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Click    key.Binding
	Focus    key.Binding
	Recenter key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
}

func defaultHomeKeyMap() homeKeyMap {
	return homeKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "log workout here")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Recenter: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "center")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-")),
	}
}

// homeView shows the map panel beside the workout sidebar.
type homeView struct {
	state    *SharedState
	keys     homeKeyMap
	focus    focusArea
	workouts []*domain.Workout
	selected int
	list     viewport.Model
	loadErr  error
}

func newHomeView(state *SharedState) *homeView {
	v := &homeView{
		state: state,
		keys:  defaultHomeKeyMap(),
		list:  viewport.New(0, 0),
	}
	v.reload()
	return v
}

func (v *homeView) reload() {
	workouts, err := v.state.App.Workouts.List(context.Background())
	v.loadErr = err
	if err != nil {
		return
	}
	v.workouts = workouts
	if v.selected >= len(workouts) {
		v.selected = max(len(workouts)-1, 0)
	}
}

// selectedWorkout returns the highlighted sidebar entry, if any.
func (v *homeView) selectedWorkout() *domain.Workout {
	if v.selected < 0 || v.selected >= len(v.workouts) {
		return nil
	}
	return v.workouts[v.selected]
}

func (v *homeView) Init() tea.Cmd { return nil }

func (v *homeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Focus) {
			if v.focus == focusMap {
				v.focus = focusList
			} else {
				v.focus = focusMap
			}
			return v, nil
		}
		if v.focus == focusList {
			return v.updateList(msg)
		}
		return v.updateMap(msg)
	}
	return v, nil
}

func (v *homeView) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m := v.state.Map
	switch {
	case key.Matches(msg, v.keys.Up):
		v.moveCursor(-1, 0)
	case key.Matches(msg, v.keys.Down):
		v.moveCursor(1, 0)
	case key.Matches(msg, v.keys.Left):
		v.moveCursor(0, -1)
	case key.Matches(msg, v.keys.Right):
		v.moveCursor(0, 1)
	case key.Matches(msg, v.keys.Recenter):
		m.Recenter()
	case key.Matches(msg, v.keys.ZoomIn):
		if m.Zoom() < maxZoom {
			m.SetZoom(m.Zoom()+1, 0)
		}
	case key.Matches(msg, v.keys.ZoomOut):
		if m.Zoom() > minZoom {
			m.SetZoom(m.Zoom()-1, 0)
		}
	case key.Matches(msg, v.keys.Click):
		if err := m.Click(); err != nil {
			v.state.SetAlert("The map is not ready yet")
		}
	}
	return v, nil
}

// moveCursor steps the crosshair and pans when it leaves the view.
func (v *homeView) moveCursor(dRows, dCols int) {
	m := v.state.Map
	m.MoveCursor(dRows, dCols)
	w, h := v.gridSize()
	if _, _, ok := geo.Project(m.Center(), m.Cursor(), m.Zoom(), w, h); !ok {
		m.Recenter()
	}
}

func (v *homeView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, v.keys.Down):
		if v.selected < len(v.workouts)-1 {
			v.selected++
		}
	case key.Matches(msg, v.keys.Click):
		w := v.selectedWorkout()
		if w == nil {
			return v, nil
		}
		if err := v.state.Session.OnWorkoutSelected(context.Background(), w.ID); err != nil {
			v.state.SetAlert(err.Error())
			return v, nil
		}
		v.state.SetStatus("Showing " + w.Kind.Icon() + " " + w.Description)
		v.reload()
	}
	return v, nil
}

func (v *homeView) panelWidths() (mapW, listW int) {
	width := max(v.state.Width, 60)
	mapW = width * 3 / 5
	return mapW, width - mapW
}

// gridSize is the character grid the map is drawn on.
func (v *homeView) gridSize() (w, h int) {
	mapW, _ := v.panelWidths()
	return max(mapW-2, 3), max(v.state.ContentHeight()-2-mapFooterLines, 3)
}

func (v *homeView) View() string {
	return v.render("", false)
}

// render draws both panels. A non-empty sidebar replaces the workout list,
// which is how the form is shown.
func (v *homeView) render(sidebar string, sidebarFocused bool) string {
	mapW, listW := v.panelWidths()
	height := v.state.ContentHeight()

	gw, gh := v.gridSize()
	mapPanel := formatter.Panel(v.state.Map.Render(gw, gh), mapW, height, v.focus == focusMap && sidebar == "")

	if sidebar == "" {
		sidebar = v.renderList(listW-2, height-2)
		sidebarFocused = v.focus == focusList
	}
	listPanel := formatter.Panel(sidebar, listW, height, sidebarFocused)

	return lipgloss.JoinHorizontal(lipgloss.Top, mapPanel, listPanel)
}

func (v *homeView) renderList(w, h int) string {
	if v.loadErr != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("Could not load workouts: %v", v.loadErr))
	}
	title := formatter.StyleHeader.Render(fmt.Sprintf("WORKOUTS (%d)", len(v.workouts)))

	v.list.Width = max(w, 1)
	v.list.Height = max(h-2, 1)
	v.list.SetContent(formatter.FormatWorkoutList(v.workouts, v.selectedIndex()))
	// Each entry is two lines plus a blank separator.
	top := v.selected * 3
	if top < v.list.YOffset || top+2 > v.list.YOffset+v.list.Height {
		v.list.SetYOffset(top)
	}
	return title + "\n\n" + v.list.View()
}

// selectedIndex is -1 while the map has focus so no entry is highlighted.
func (v *homeView) selectedIndex() int {
	if v.focus != focusList {
		return -1
	}
	return v.selected
}

func (v *homeView) ID() ViewID    { return ViewHome }
func (v *homeView) Title() string { return "" }
func (v *homeView) ShortHelp() []key.Binding {
	if v.focus == focusList {
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "choose")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show on map")),
			v.keys.Focus,
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		v.keys.Click,
		v.keys.ZoomIn,
		v.keys.Recenter,
		v.keys.Focus,
	}
}
