package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"brain-atlas/internal/fonts"
	"brain-atlas/internal/graphics"
	"brain-atlas/internal/loader"
	"brain-atlas/internal/overlay"
	"brain-atlas/internal/pointer"
	"brain-atlas/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fullscreen bool

var viewCmd = &cobra.Command{
	Use:   "view [asset]",
	Short: "Open the interactive viewer",
	Long: `Opens the viewer window and loads the asset in the background.

Controls:
  drag        orbit          wheel  zoom
  click       select region  R      reload asset
  G           toggle grid    A      toggle region anchors
  F           toggle FPS     L      toggle log tail
  Home        reset camera`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "open fullscreen")
}

func runView(cmd *cobra.Command, args []string) error {
	path := cfg.AssetPath
	if len(args) > 0 {
		path = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ld := loader.New(loader.Options{
		Catalog:            cat,
		CharacteristicSize: cfg.CharacteristicSize,
		MatchThreshold:     cfg.MatchThreshold,
		Logger:             log.Logger,
	})
	defer ld.Close()

	reload := func() {
		if _, err := ld.Load(ctx, path); err != nil {
			log.Warn("reload refused", zap.Error(err))
		}
	}
	reload()
	if cfg.WatchAsset {
		if err := ld.Watch(ctx, path); err != nil {
			log.Warn("asset watch disabled", zap.Error(err))
		}
	}

	scn := scene.New(scene.Options{
		Catalog:     cat,
		Pointer:     pointer.New(cat, cfg.HoverThreshold),
		Loader:      ld,
		Viewport:    cfg.Viewport,
		Logger:      log.Logger,
		GridVisible: cfg.GridVisible,
		Reload:      reload,
	})
	ov := overlay.New(cat)
	ov.ShowFPS = cfg.ShowFPS
	ov.ShowMemAlloc = cfg.ShowMemAlloc
	ov.LogLines = log.Lines
	if cfg.Font != "" {
		if fp, err := fonts.Find(cfg.Font); err == nil {
			ov.SetFontPath(fp)
		} else {
			log.Warn("font not found, using default", zap.String("font", cfg.Font))
		}
	}

	update := func() {
		toggleOverlay(ov)
		scn.Update()
	}
	draw := func() {
		scn.Draw()
		ov.Draw(scn.OverlayView())
	}
	win := graphics.Window{
		Title:      "brainmap - " + path,
		Width:      1280,
		Height:     800,
		Fullscreen: fullscreen,
		Done:       ctx.Done(),
	}
	graphics.Run(win, update, draw, func() {
		ov.Close()
		scn.Close()
	})
	return nil
}

func toggleOverlay(ov *overlay.Overlay) {
	switch {
	case rl.IsKeyPressed(rl.KeyF):
		ov.ShowFPS = !ov.ShowFPS
	case rl.IsKeyPressed(rl.KeyL):
		ov.ShowLog = !ov.ShowLog
	}
}
