package expr

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line diff of the multi-line forms of from and to. Lines
// only in from are prefixed "- ", lines only in to "+ ".
func Diff(from, to *Expr, colored bool) string {
	a := Format(from, Multiline()) + "\n"
	b := Format(to, Multiline()) + "\n"
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)

	del, ins := fmtPlain, fmtPlain
	if colored {
		r := color.New(color.FgRed)
		r.EnableColor()
		g := color.New(color.FgGreen)
		g.EnableColor()
		del, ins = r.SprintFunc(), g.SprintFunc()
	}
	var buf strings.Builder
	for _, d := range diffs {
		prefix, paint := "  ", fmtPlain
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "- ", del
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", ins
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			buf.WriteString(paint(prefix + line))
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func fmtPlain(a ...any) string {
	return fmt.Sprint(a...)
}
