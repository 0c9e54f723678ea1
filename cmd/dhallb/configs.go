package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-dhall/debug"
	"github.com/signadot/go-dhall/expr"
)

type MainConfig struct {
	Color bool   `cli:"name=color desc='output with color'"`
	Debug string `cli:"name=debug desc='comma separated debug toggles: derive,normalize,input,script'"`

	Main *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Multiline bool `cli:"name=m aliases=multiline desc='one record or union field per line'"`
	Normalize bool `cli:"name=n aliases=normalize desc='print the normal form'"`

	Fmt *cli.Command
}

type HashConfig struct {
	*MainConfig

	Hash *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Normalize bool `cli:"name=n aliases=normalize desc='compare normal forms'"`

	Diff *cli.Command
}

// colors reports whether to color output written to w. An explicit
// -color wins; otherwise terminals get color.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cfg *MainConfig) setup() {
	if cfg.Debug != "" {
		debug.Enable(strings.FieldsFunc(cfg.Debug, func(r rune) bool { return r == ',' })...)
	}
}

// readExpr decodes the binary expression in path, "-" meaning in.
func readExpr(cc *cli.Context, path string) (*expr.Expr, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cc.In)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	e, err := expr.DecodeBinary(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return e, nil
}
