package commands

import (
	"context"
	"fmt"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	RunFlags `embed:""`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	bc, err := runOnce(ctx, g, cfg, runSpec{flags: b.RunFlags})
	if err != nil {
		return err
	}
	fmt.Printf("Build finished: %s\n", bc.Report.Summary())
	return nil
}
