package codegen

import (
	"fmt"
	"go/ast"
	"reflect"
	"strconv"
	"strings"
)

// ParseTag parses the content of a dhall struct tag or directive into a
// map. Items are separated by commas or spaces; an item is either a
// flag (key) or a pair (key=value). Values containing separators are
// quoted: key="a b".
func ParseTag(tag string) (map[string]string, error) {
	res := make(map[string]string)
	for _, item := range splitItems(tag) {
		k, v, isPair := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("empty key in %q", tag)
		}
		if _, dup := res[k]; dup {
			return nil, fmt.Errorf("duplicate key %q in %q", k, tag)
		}
		if !isPair {
			res[k] = ""
			continue
		}
		if strings.HasPrefix(v, `"`) {
			uq, err := strconv.Unquote(v)
			if err != nil {
				return nil, fmt.Errorf("bad quoted value for %q: %w", k, err)
			}
			v = uq
		}
		res[k] = v
	}
	return res, nil
}

func splitItems(s string) []string {
	var (
		items   []string
		cur     strings.Builder
		inQuote bool
	)
	flush := func() {
		if cur.Len() > 0 {
			items = append(items, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ',' || r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return items
}

func fieldTag(field *ast.Field) string {
	if field.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(raw).Get("dhall")
}
