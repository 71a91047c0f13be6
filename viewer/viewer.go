//go:build raylib

package viewer

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/habitat/camera"
	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/world"
)

// Available reports whether this build can open a window.
const Available = true

const (
	hudHeight   = 64
	buttonWidth = 70
	panelWidth  = 170
	minGridW    = 480
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	StatusColor rl.Color
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	FontSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		StatusColor: rl.Yellow,
		Padding:     8,
		LineHeight:  18,
		LabelWidth:  78,
		FontSize:    14,
	}
}

// Viewer is a status sink that draws the field after every step. It is also
// a viability check: closing the window ends the run.
type Viewer struct {
	theme   Theme
	palette Palette
	cam     *camera.Camera
	gridW   int32
	gridH   int32

	selected *world.Organism
	paused   bool
	closed   bool
}

// New opens a window sized for a depth×width field.
func New(cfg config.ViewerConfig, depth, width int) (*Viewer, error) {
	palette, err := NewPalette(cfg)
	if err != nil {
		return nil, fmt.Errorf("viewer palette: %w", err)
	}
	cell := max(cfg.CellSize, 1)

	v := &Viewer{
		theme:   DefaultTheme(),
		palette: palette,
		gridW:   int32(max(width*cell, minGridW)),
		gridH:   int32(depth * cell),
	}
	v.cam = camera.New(float32(v.gridW), float32(v.gridH), depth, width, float32(cell))

	rl.InitWindow(v.gridW+panelWidth, v.gridH+hudHeight, "Habitat")
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return v, nil
}

// IsViable is false once the window has been closed.
func (v *Viewer) IsViable(*world.Field) bool {
	if !v.closed && rl.WindowShouldClose() {
		v.closed = true
	}
	return !v.closed
}

// ShowStatus draws one frame. While paused it keeps drawing until Step or
// Resume is pressed or the window is closed.
func (v *Viewer) ShowStatus(step int, f *world.Field) {
	if v.closed {
		return
	}
	census := telemetry.TakeCensus(step, f)
	for {
		v.handleInput(f)
		advance := v.frame(step, f, census)
		if !v.paused || advance {
			return
		}
		if rl.WindowShouldClose() {
			v.closed = true
			return
		}
	}
}

// handleInput pans, zooms and selects organisms for the inspector.
func (v *Viewer) handleInput(f *world.Field) {
	mouse := rl.GetMousePosition()
	overGrid := mouse.X < float32(v.gridW) && mouse.Y < float32(v.gridH)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && overGrid {
		v.cam.ZoomAt(float32(math.Pow(1.15, float64(wheel))), mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.cam.Reset()
	}
	// Clicking an empty cell clears the selection.
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && overGrid {
		if loc, ok := v.cam.CellAt(mouse.X, mouse.Y); ok {
			v.selected = f.OccupantAt(loc)
		}
	}
}

// frame draws the grid, side panel and HUD. It reports whether Step was
// pressed.
func (v *Viewer) frame(step int, f *world.Field, census telemetry.Census) bool {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	row0, row1, col0, col1 := v.cam.VisibleCells()
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			loc := world.Loc(row, col)
			x, y, size := v.cam.CellRect(loc)
			s := int32(math.Ceil(float64(size)))
			rl.DrawRectangle(int32(x), int32(y), s, s, toColor(v.palette.Cell(f, loc)))
		}
	}
	if v.selected != nil {
		if loc, ok := v.selected.Location(); ok {
			x, y, size := v.cam.CellRect(loc)
			rl.DrawRectangleLines(int32(x)-1, int32(y)-1, int32(size)+2, int32(size)+2, rl.White)
		}
	}

	v.drawPanel()
	return v.drawHUD(HUDData{
		Step:   step,
		Census: census,
		Paused: v.paused,
		Viable: !v.closed,
		FPS:    rl.GetFPS(),
	})
}

func (v *Viewer) drawPanel() {
	t := v.theme
	x := v.gridW
	rl.DrawRectangle(x, 0, panelWidth, v.gridH, t.PanelBg)
	rl.DrawRectangleLines(x, 0, panelWidth, v.gridH, t.PanelBorder)

	x += t.Padding
	y := t.Padding
	rl.DrawText("Species", x, y, t.FontSize, t.Header)
	y += t.LineHeight
	for _, id := range world.AllSpecies() {
		rl.DrawRectangle(x, y+2, 12, 12, toColor(v.palette.Species(id)))
		rl.DrawText(id.String(), x+18, y, t.FontSize, t.LabelColor)
		y += t.LineHeight
	}
	rl.DrawRectangle(x, y+2, 12, 12, toColor(v.palette.Species(world.Rabbit).Darken(SickShade)))
	rl.DrawText("sick", x+18, y, t.FontSize, t.LabelColor)
	y += 2 * t.LineHeight

	rl.DrawText("Inspector", x, y, t.FontSize, t.Header)
	y += t.LineHeight
	rows := Inspect(v.selected)
	if rows == nil {
		rl.DrawText("click a cell", x, y, t.FontSize-2, rl.Gray)
		return
	}
	for _, r := range rows {
		rl.DrawText(r.Label+":", x, y, t.FontSize-2, t.LabelColor)
		rl.DrawText(r.Value, x+t.LabelWidth, y, t.FontSize-2, t.ValueColor)
		y += t.LineHeight - 2
	}
}

func (v *Viewer) drawHUD(data HUDData) bool {
	t := v.theme
	y := v.gridH
	w := v.gridW + panelWidth
	rl.DrawRectangle(0, y, w, hudHeight, t.PanelBg)
	rl.DrawRectangleLines(0, y, w, hudHeight, t.PanelBorder)

	rl.DrawText(data.StatusLine(), t.Padding, y+t.Padding, t.FontSize, t.StatusColor)
	rl.DrawText(data.PopulationLine(), t.Padding, y+t.Padding+t.LineHeight, t.FontSize, t.LabelColor)
	rl.DrawText(fmt.Sprintf("FPS: %d | wheel: zoom | right drag: pan | R: reset view", data.FPS),
		t.Padding, y+t.Padding+2*t.LineHeight, t.FontSize-2, rl.Gray)

	bx := float32(w - 2*(buttonWidth+t.Padding))
	by := float32(y + t.Padding)
	label := "Pause"
	if v.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonWidth, Height: 24}, label) || rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	stepped := false
	if v.paused {
		bx += buttonWidth + float32(t.Padding)
		stepped = gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonWidth, Height: 24}, "Step") || rl.IsKeyPressed(rl.KeyN)
	}
	return stepped
}

// Close shuts the window.
func (v *Viewer) Close() {
	rl.CloseWindow()
}

func toColor(c RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
