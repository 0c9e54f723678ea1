package expr

// AlphaNormalize renames every bound variable to "_" so that expressions
// differing only in binder names become structurally equal.
func AlphaNormalize(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case LambdaKind, PiKind:
		return &Expr{
			Kind:  e.Kind,
			Name:  "_",
			Annot: AlphaNormalize(e.Annot),
			Body:  AlphaNormalize(Rename(e.Name, "_", e.Body)),
		}
	case LetKind:
		return &Expr{
			Kind:   LetKind,
			Name:   "_",
			Annot:  AlphaNormalize(e.Annot),
			Values: []*Expr{AlphaNormalize(e.Values[0])},
			Body:   AlphaNormalize(Rename(e.Name, "_", e.Body)),
		}
	}
	return descend(e, AlphaNormalize)
}

// JudgmentallyEqual reports whether a and b are equal up to normalization
// and the names of bound variables.
func JudgmentallyEqual(a, b *Expr) bool {
	return Equal(AlphaNormalize(Normalize(a)), AlphaNormalize(Normalize(b)))
}
