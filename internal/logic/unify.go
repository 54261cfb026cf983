package logic

// Substitution maps variable names to the constants they were bound to.
type Substitution map[string]Term

// Lookup returns the binding for variable v.
func (s Substitution) Lookup(v Term) (Term, bool) {
	if !v.IsVar() {
		return Term{}, false
	}
	t, ok := s[v.sym]
	return t, ok
}

// Int returns the integer bound to v, or 0 when unbound.
func (s Substitution) Int(v Term) int {
	t, _ := s.Lookup(v)
	return t.IntValue()
}

// Sym returns the symbol bound to v, or "" when unbound.
func (s Substitution) Sym(v Term) string {
	t, _ := s.Lookup(v)
	return t.SymValue()
}

// Unify matches query against a ground fact. Constants in the query must
// equal the fact's constants; variables bind to them, and a variable that
// occurs twice must bind to equal constants. There is no occurs check and
// no variable-to-variable unification: facts are always ground.
func Unify(query, fact Predicate) (Substitution, bool) {
	if query.kind != fact.kind || query.kind == KindInvalid {
		return nil, false
	}
	sub := Substitution{}
	for i := 0; i < query.kind.Arity(); i++ {
		q, f := query.args[i], fact.args[i]
		if !f.IsConstant() {
			return nil, false
		}
		switch {
		case q.IsConstant():
			if q != f {
				return nil, false
			}
		case q.IsVar():
			if prev, bound := sub[q.sym]; bound {
				if prev != f {
					return nil, false
				}
				continue
			}
			sub[q.sym] = f
		default:
			return nil, false
		}
	}
	return sub, true
}

// Matches reports whether query unifies with fact without building bindings
// for the caller.
func Matches(query, fact Predicate) bool {
	_, ok := Unify(query, fact)
	return ok
}
