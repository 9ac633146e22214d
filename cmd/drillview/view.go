package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"drillview/internal/camera"
	"drillview/internal/commands"
	"drillview/internal/config"
	"drillview/internal/debug"
	"drillview/internal/fonts"
	"drillview/internal/frame"
	"drillview/internal/graphics"
	"drillview/internal/logger"
	"drillview/internal/primitives"
	"drillview/internal/project"
	"drillview/internal/theme"
	"drillview/internal/ui"
	"drillview/internal/viewer"
	"drillview/internal/viewport"
)

func registerView(reg *commands.Registry) {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	path := fs.String("project", "", "project file (JSON); defaults to the config or "+config.EnvProject)
	cfgPath := fs.String("config", config.DefaultPath, "preferences file (YAML)")
	view := fs.String("view", "", "initial view: view3d or plan2d")
	reg.Register("view", "open the drillhole viewer window", fs, func() error {
		return runView(*cfgPath, *path, *view)
	})
}

func runView(cfgPath, projectPath, view string) error {
	cfg, cfgErr := config.Load(cfgPath)
	saved := cfg
	cfg.ApplyEnv(nil)
	if projectPath != "" {
		cfg.Project = projectPath
	}
	if view != "" {
		cfg.View = view
	}

	logs := logger.New(cfg.LogFile)
	log := logs.Slog(cfg.SlogLevel())
	slog.SetDefault(log)
	if cfgErr != nil {
		log.Warn("using default preferences", "err", cfgErr)
	}

	th, err := theme.Resolve(cfg.Theme)
	if err != nil {
		log.Warn("theme not found, using light", "theme", cfg.Theme, "err", err)
	}
	v, ok := camera.ParseView(cfg.View)
	if !ok {
		log.Warn("unknown view, using 3D", "view", cfg.View)
		v = camera.View3D
	}

	proj, err := loadProject(cfg.Project)
	if err != nil {
		return err
	}
	if dups := proj.DuplicateIDs(); len(dups) > 0 {
		log.Warn("duplicate drillhole ids; lookups use the first of each", "ids", dups)
	}
	log.Info("project loaded", "path", cfg.Project, "holes", len(proj.Drillholes))

	title := "drillview"
	if proj.Name != "" {
		title += " - " + proj.Name
	}
	win := graphics.Open(title, cfg.Window, log)
	defer win.Close()

	queue := frame.NewQueue()
	bus := viewer.NewBus()
	renderer := viewport.NewRenderer(primitives.NewRegistry(primitives.DefaultDetail()))
	defer renderer.Unload()

	opts := viewer.DefaultOptions()
	opts.Width, opts.Height = float32(cfg.Window.Width), float32(cfg.Window.Height)
	opts.View = v
	opts.Camera = camera.Options{Damping3D: cfg.Damping3D, DampingPlan: cfg.DampingPlan}
	opts.Toggles = viewer.Toggles{ShowGrid: cfg.ShowGrid, ShowTerrain: cfg.ShowTerrain}
	opts.Theme = th
	opts.Terrain.Roughness = cfg.TerrainRoughness
	opts.Terrain.Seed = cfg.TerrainSeed
	opts.Logger = log

	ctrl := viewer.New(bus, queue, renderer, opts)
	renderer.Attach(ctrl)
	ctrl.OnSelect = ctrl.SetSelected
	viewChanged := false
	ctrl.OnViewChange = func(v camera.View) {
		saved.View = string(v)
		viewChanged = true
	}
	ctrl.Mount()
	defer ctrl.Teardown()
	ctrl.SetHoles(proj.Snapshot())

	// The watcher goroutine only hands the newest document over; the main loop applies it.
	reloads := make(chan *project.Project, 1)
	if cfg.WatchProject {
		w, err := project.Watch(cfg.Project, project.DefaultDebounce, func(p *project.Project, err error) {
			if err != nil {
				log.Warn("project reload failed", "err", err)
				return
			}
			select {
			case <-reloads:
			default:
			}
			reloads <- p
		})
		if err != nil {
			log.Warn("project watch disabled", "err", err)
		} else {
			defer w.Close()
		}
	}

	engine := ui.New()
	defer engine.Unload()
	if cfg.Font != "" {
		if fontPath, err := fonts.NewFinder().Resolve(cfg.Font); err != nil {
			log.Warn("font not found, using default", "font", cfg.Font)
		} else if err := engine.LoadFont(fontPath); err != nil {
			log.Warn("font failed to load", "path", fontPath, "err", err)
		}
	}
	overlay := viewport.NewOverlay(engine)
	input := viewport.NewInput(bus)

	dbg := debug.New()
	dbg.SetShowFPS(cfg.ShowFPS)
	dbg.SetShowMemAlloc(cfg.ShowMemAlloc)
	dbg.SetFont(engine.Font())
	dbg.SetColor(ui.Color(th.Text))
	if cfg.ShowFPS {
		dbg.Status = func() string {
			return fmt.Sprintf("%s · %d holes", ctrl.View(), len(ctrl.Holes()))
		}
		dbg.Tail = func() []string { return logs.Tail(3) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	update := func() {
		select {
		case p := <-reloads:
			if dups := p.DuplicateIDs(); len(dups) > 0 {
				log.Warn("duplicate drillhole ids; lookups use the first of each", "ids", dups)
			}
			ctrl.SetHoles(p.Snapshot())
			log.Info("project reloaded", "holes", len(p.Drillholes))
		default:
		}
		input.Poll()
	}
	draw := func() {
		overlay.Draw(ctrl)
		dbg.Draw()
	}
	win.Run(ctx, queue, update, draw)

	// Only the last view is remembered; flags and environment overrides are not persisted.
	if viewChanged && cfgErr == nil {
		if err := config.Save(cfgPath, saved); err != nil {
			log.Warn("could not save preferences", "err", err)
		}
	}
	return nil
}
