package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/go-dhall/derive/codegen"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("dhall-codegen").
		WithSynopsis("dhall-codegen [opts]").
		WithDescription("Generate derive shapes and codecs (<Type>Shape, <Type>Codec) for types with //dhall: directives.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='output file for generated Go code (default: <package>_dhall_gen.go)'"`
	Dir        string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive  bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	NoTypes    bool   `cli:"name=no-types desc='do not type check packages; fields of named non-generated types are then rejected'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}

	packages, err := codegen.DiscoverPackages(dir, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(packages) == 0 {
		return fmt.Errorf("no Go packages found in %q", dir)
	}
	if cfg.OutputFile != "" && len(packages) > 1 {
		return fmt.Errorf("%w: -o cannot be used with more than one package", cli.ErrUsage)
	}

	loader := codegen.NewPackageLoader()
	for _, pkg := range packages {
		config := &codegen.CodegenConfig{
			OutputFile: cfg.OutputFile,
			Dir:        pkg.Dir,
			Package:    pkg,
		}
		if !cfg.NoTypes {
			loaded, err := loader.LoadDir(pkg.Dir)
			if err != nil {
				return fmt.Errorf("failed to load package %q: %w", pkg.Path, err)
			}
			config.Types = loaded.Types
		}
		out, err := codegen.Generate(pkg, config, func(path string, data []byte) error {
			return os.WriteFile(path, data, 0644)
		})
		if err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.Path, err)
		}
		if out != "" {
			fmt.Fprintf(cc.Out, "%s: wrote %s\n", pkg.Name, out)
		}
	}
	return nil
}
