package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the viewer window. Zero width or height opens at the monitor size.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
	// Done, when closed, ends the loop as if the window had been closed.
	Done <-chan struct{}
}

// Run opens the window and runs the main loop. Each frame it calls update (input, picking),
// then clears the screen and calls draw (scene, then overlay). shutdown runs while the GL
// context still exists so GPU resources can be released. The window is resizable; the
// viewport policy rescales the model from the live screen size.
func Run(w Window, update, draw, shutdown func()) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	if w.Width == 0 || w.Height == 0 {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
	}

	fps := w.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() && !isDone(w.Done) {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(12, 13, 17, 255))
		draw()
		rl.EndDrawing()
	}
	if shutdown != nil {
		shutdown()
	}
}

func isDone(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
