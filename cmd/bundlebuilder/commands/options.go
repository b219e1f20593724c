package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
)

// OptionsCmd implements the 'options' command.
type OptionsCmd struct {
	Mode string `name:"mode" help:"Override build.build_mode"`
}

func (o *OptionsCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	params, err := parameters(cfg, runSpec{flags: RunFlags{Mode: o.Mode}})
	if err != nil {
		return err
	}
	return printOptions(os.Stdout, params)
}

func printOptions(w io.Writer, params *build.ParametersContext) error {
	p := params.Parameters()
	fmt.Fprintf(w, "build_mode:        %s\n", p.BuildMode)
	fmt.Fprintf(w, "build_pipeline:    %s\n", p.BuildPipeline)
	fmt.Fprintf(w, "output_directory:  %s\n", params.PipelineOutputDirectory())
	fmt.Fprintf(w, "package_directory: %s\n", params.PackageDirectory())

	switch p.BuildPipeline {
	case build.PipelineScriptable:
		sp, err := params.ScriptableBuildParameters()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "compression:       %s\n", sp.Compression)
		fmt.Fprintf(w, "use_cache:         %t\n", sp.UseCache)
		fmt.Fprintf(w, "content_flags:     %d\n", sp.ContentFlags)
		fmt.Fprintf(w, "write_link_xml:    %t\n", sp.WriteLinkXML)
	default:
		opts, err := params.PipelineBuildOptions()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "build_options:     %s\n", opts)
	}
	return nil
}
