package commands

import (
	"context"
	"fmt"
)

// VerifyCmd implements the 'verify' command. It never invokes the engine; the
// output directory must already contain the build manifest.
type VerifyCmd struct {
	RunFlags `embed:""`
}

func (v *VerifyCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	bc, err := runOnce(ctx, g, cfg, runSpec{flags: v.RunFlags, prebuilt: true, verify: true})
	if err != nil {
		return err
	}
	fmt.Printf("Verification passed: %s\n", bc.Report.Summary())
	return nil
}
