package main

import (
	"flag"
	"fmt"
	"os"

	"drillview/internal/commands"
	"drillview/internal/config"
	"drillview/internal/geom"
	"drillview/internal/picking"
	"drillview/internal/project"
)

// projectFlag adds -project, defaulting to DRILLVIEW_PROJECT.
func projectFlag(fs *flag.FlagSet) *string {
	return fs.String("project", os.Getenv(config.EnvProject), "project file (JSON)")
}

func loadProject(path string) (*project.Project, error) {
	if path == "" {
		return nil, fmt.Errorf("no project file: pass -project or set %s", config.EnvProject)
	}
	p, err := project.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return p, nil
}

func registerBounds(reg *commands.Registry) {
	fs := flag.NewFlagSet("bounds", flag.ContinueOnError)
	path := projectFlag(fs)
	reg.Register("bounds", "print the bounds of every collar and hole bottom", fs, func() error {
		p, err := loadProject(*path)
		if err != nil {
			return err
		}
		box, ok := geom.Bounds(p.Snapshot())
		if !ok {
			fmt.Println("empty")
			return nil
		}
		size := box.Size()
		fmt.Printf("min    %.2f %.2f %.2f\n", box.Min.X(), box.Min.Y(), box.Min.Z())
		fmt.Printf("max    %.2f %.2f %.2f\n", box.Max.X(), box.Max.Y(), box.Max.Z())
		fmt.Printf("size   %.2f %.2f %.2f\n", size.X(), size.Y(), size.Z())
		fmt.Printf("holes  %d\n", len(p.Drillholes))
		return nil
	})
}

func registerInspect(reg *commands.Registry) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	path := projectFlag(fs)
	id := fs.String("id", "", "drillhole id")
	reg.Register("inspect", "print the tooltip details of one drillhole", fs, func() error {
		if *id == "" {
			return fmt.Errorf("inspect: -id is required")
		}
		p, err := loadProject(*path)
		if err != nil {
			return err
		}
		h, ok := p.Find(*id)
		if !ok {
			return fmt.Errorf("drillhole %q not found", *id)
		}
		for _, line := range picking.TooltipLines(h) {
			fmt.Println(line)
		}
		return nil
	})
}
