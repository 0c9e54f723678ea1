package expr

// Shift adds d to the index of every variable named name whose index is
// at least min, accounting for binders of the same name.
func Shift(d int, name string, min int, e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case VarKind:
		if e.Name == name && e.Index >= min {
			return Var(e.Name, e.Index+d)
		}
		return e
	case LambdaKind, PiKind:
		inner := min
		if e.Name == name {
			inner++
		}
		return &Expr{
			Kind:  e.Kind,
			Name:  e.Name,
			Annot: Shift(d, name, min, e.Annot),
			Body:  Shift(d, name, inner, e.Body),
		}
	case LetKind:
		inner := min
		if e.Name == name {
			inner++
		}
		return &Expr{
			Kind:   LetKind,
			Name:   e.Name,
			Annot:  Shift(d, name, min, e.Annot),
			Values: []*Expr{Shift(d, name, min, e.Values[0])},
			Body:   Shift(d, name, inner, e.Body),
		}
	}
	return descend(e, func(c *Expr) *Expr { return Shift(d, name, min, c) })
}

// Subst replaces the variable name@index with r in e.
func Subst(name string, index int, r, e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case VarKind:
		if e.Name == name && e.Index == index {
			return r
		}
		return e
	case LambdaKind, PiKind:
		inner := index
		if e.Name == name {
			inner++
		}
		return &Expr{
			Kind:  e.Kind,
			Name:  e.Name,
			Annot: Subst(name, index, r, e.Annot),
			Body:  Subst(name, inner, Shift(1, e.Name, 0, r), e.Body),
		}
	case LetKind:
		inner := index
		if e.Name == name {
			inner++
		}
		return &Expr{
			Kind:   LetKind,
			Name:   e.Name,
			Annot:  Subst(name, index, r, e.Annot),
			Values: []*Expr{Subst(name, index, r, e.Values[0])},
			Body:   Subst(name, inner, Shift(1, e.Name, 0, r), e.Body),
		}
	}
	return descend(e, func(c *Expr) *Expr { return Subst(name, index, r, c) })
}

// Rename rewrites body, which sits directly under a binder named from, so
// that it sits under a binder named to instead. References to the binder
// become to@0; the substitution is capture-avoiding.
func Rename(from, to string, body *Expr) *Expr {
	if from == to {
		return body
	}
	b := Shift(1, to, 0, body)
	b = Subst(from, 0, Var(to, 0), b)
	return Shift(-1, from, 0, b)
}

// descend rebuilds e with f applied to each direct subexpression. Binder
// kinds are handled by the callers.
func descend(e *Expr, f func(*Expr) *Expr) *Expr {
	res := *e
	if e.Values != nil {
		res.Values = make([]*Expr, len(e.Values))
		for i, v := range e.Values {
			if v != nil {
				res.Values[i] = f(v)
			}
		}
	}
	if e.Chunks != nil {
		res.Chunks = make([]Chunk, len(e.Chunks))
		for i, c := range e.Chunks {
			res.Chunks[i] = Chunk{Prefix: c.Prefix, Expr: f(c.Expr)}
		}
	}
	if e.Annot != nil {
		res.Annot = f(e.Annot)
	}
	if e.Body != nil {
		res.Body = f(e.Body)
	}
	return &res
}
