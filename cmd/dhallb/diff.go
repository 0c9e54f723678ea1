package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-dhall/expr"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	cfg.setup()
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readExpr(cc, args[0])
	if err != nil {
		return err
	}
	b, err := readExpr(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Normalize {
		a, b = expr.Normalize(a), expr.Normalize(b)
	}
	if expr.Equal(a, b) {
		return nil
	}
	if _, err := fmt.Fprint(cc.Out, expr.Diff(a, b, cfg.colors(cc.Out))); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
