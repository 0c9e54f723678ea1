package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-dhall/expr"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.setup()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		e, err := readExpr(cc, path)
		if err != nil {
			return err
		}
		h, err := expr.SemanticHash(e)
		if err != nil {
			return fmt.Errorf("error hashing %s: %w", path, err)
		}
		if len(args) == 1 {
			fmt.Fprintln(cc.Out, h)
			continue
		}
		fmt.Fprintf(cc.Out, "%s  %s\n", h, path)
	}
	return nil
}
