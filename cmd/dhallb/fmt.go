package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-dhall/expr"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.setup()
	if len(args) == 0 {
		args = []string{"-"}
	}
	var opts []expr.FormatOption
	if cfg.Multiline {
		opts = append(opts, expr.Multiline())
	}
	if cfg.colors(cc.Out) {
		opts = append(opts, expr.WithColors(expr.NewColors()))
	}
	for _, path := range args {
		e, err := readExpr(cc, path)
		if err != nil {
			return err
		}
		if cfg.Normalize {
			e = expr.Normalize(e)
		}
		if _, err := fmt.Fprintln(cc.Out, expr.Format(e, opts...)); err != nil {
			return err
		}
	}
	return nil
}
