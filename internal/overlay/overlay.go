// Package overlay draws the 2D layer on top of the brain: tooltip, selection line, load
// banner, and the optional FPS/memory counters and log tail.
package overlay

import (
	"fmt"
	"runtime"

	"brain-atlas/internal/catalog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30

	tooltipOffset   = 16
	tooltipFontSize = 18
	tooltipPadding  = 8
	logFontSize     = 14
	logLines        = 6
)

var (
	tooltipBg   = rl.NewColor(20, 22, 28, 220)
	bannerBg    = rl.NewColor(0, 0, 0, 160)
	failedColor = rl.NewColor(240, 90, 90, 255)
)

// Overlay holds the 2D layer state. FPS, memory and the log tail are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowLog      bool
	// LogLines feeds the log tail, typically logger.Logger.Lines.
	LogLines func() []string

	cat          *catalog.Catalog
	font         rl.Font // zero texture ID = raylib default font
	fontPath     string  // set until the font is loaded on the first Draw
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns an overlay that looks up sub-part parents in cat.
func New(cat *catalog.Catalog) *Overlay {
	return &Overlay{cat: cat}
}

// SetFontPath sets a TTF/OTF font for all overlay text. Loading is deferred to the first
// Draw so it runs after the window/OpenGL context exists.
func (o *Overlay) SetFontPath(path string) {
	o.fontPath = path
}

func (o *Overlay) ensureFont() {
	if o.fontPath == "" {
		return
	}
	path := o.fontPath
	o.fontPath = ""
	f := rl.LoadFontEx(path, tooltipFontSize*2, nil)
	if rl.IsFontValid(f) {
		rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
		o.font = f
	}
}

// Close unloads the custom font, if any. Call before the window closes.
func (o *Overlay) Close() {
	if o.font.Texture.ID != 0 {
		rl.UnloadFont(o.font)
		o.font = rl.Font{}
	}
}

func (o *Overlay) measure(text string, size int32) int32 {
	if o.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(o.font, text, float32(size), 1).X)
	}
	return rl.MeasureText(text, size)
}

func (o *Overlay) text(text string, x, y, size int32, color rl.Color) {
	if o.font.Texture.ID != 0 {
		rl.DrawTextEx(o.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
		return
	}
	rl.DrawText(text, x, y, size, color)
}

// Draw renders the overlay. Call after the scene, outside BeginMode3D.
func (o *Overlay) Draw(v View) {
	o.ensureFont()
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if text := bannerText(v); text != "" {
		color := rl.RayWhite
		if v.Err != nil {
			color = failedColor
		}
		w := o.measure(text, fontSize)
		x := (screenW - w) / 2
		y := screenH/2 - fontSize/2
		rl.DrawRectangle(x-padding, y-padding/2, w+2*padding, fontSize+padding, bannerBg)
		o.text(text, x, y, fontSize, color)
	}

	o.text(selectionText(v.Selected), padding, screenH-lineHeight-padding, fontSize, rl.RayWhite)

	o.drawCounters(screenW)
	if o.ShowLog && o.LogLines != nil {
		o.drawLog(screenH)
	}
	if lines := tooltipLines(v.Hovered, o.cat); len(lines) > 0 {
		o.drawTooltip(lines, v.Hovered.RGBA(), v.Mouse, [2]float32{float32(screenW), float32(screenH)})
	}
}

func (o *Overlay) drawTooltip(lines []string, swatch [4]uint8, mouse, screen [2]float32) {
	var w int32
	for _, l := range lines {
		w = max(w, o.measure(l, tooltipFontSize))
	}
	lh := int32(tooltipFontSize + 4)
	size := [2]float32{float32(w + 2*tooltipPadding + lh), float32(lh*int32(len(lines)) + 2*tooltipPadding)}
	pos := placeTooltip(mouse, size, screen)
	x, y := int32(pos[0]), int32(pos[1])

	rl.DrawRectangle(x, y, int32(size[0]), int32(size[1]), tooltipBg)
	rl.DrawRectangle(x+tooltipPadding, y+tooltipPadding+2, lh-8, lh-8, rl.NewColor(swatch[0], swatch[1], swatch[2], swatch[3]))
	for i, l := range lines {
		color := rl.LightGray
		if i == 0 {
			color = rl.RayWhite
		}
		o.text(l, x+tooltipPadding+lh, y+tooltipPadding+int32(i)*lh, tooltipFontSize, color)
	}
}

// drawCounters draws FPS and heap allocation at the top-right, recomputing the text every
// updateInterval frames.
func (o *Overlay) drawCounters(screenW int32) {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFpsText == "" {
		update = true
	}
	if o.ShowMemAlloc && o.lastMemText == "" {
		update = true
	}

	y := int32(padding)
	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := o.measure(o.lastFpsText, fontSize)
		o.text(o.lastFpsText, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	if o.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			mb := float64(o.lastMemStats.Alloc) / (1024 * 1024)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		w := o.measure(o.lastMemText, fontSize)
		o.text(o.lastMemText, screenW-w-padding, y, fontSize, rl.Green)
	}
}

func (o *Overlay) drawLog(screenH int32) {
	lines := o.LogLines()
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	y := screenH - 2*lineHeight - padding - int32(len(lines))*(logFontSize+2)
	for _, l := range lines {
		o.text(l, padding, y, logFontSize, rl.Gray)
		y += logFontSize + 2
	}
}
