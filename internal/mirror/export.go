// Package mirror projects an agent's knowledge base into Google Mangle so the
// same beliefs can be inspected with a full Datalog engine. The agents never
// consult the mirror; it exists for debugging and for the inspect command.
package mirror

import (
	"fmt"
	"strings"

	"github.com/google/mangle/ast"

	"gridmind/internal/kb"
	"gridmind/internal/logic"
)

// Export converts every fact in k to a Mangle atom, in the KB's order.
func Export(k *kb.KB) []ast.Atom {
	facts := k.All()
	out := make([]ast.Atom, 0, len(facts))
	for _, f := range facts {
		out = append(out, ToAtom(f))
	}
	return out
}

// ToAtom converts a ground predicate. Integers become numbers and symbols
// become strings.
func ToAtom(p logic.Predicate) ast.Atom {
	sym := ast.PredicateSym{Symbol: p.Kind().String(), Arity: p.Arity()}
	args := make([]ast.BaseTerm, 0, p.Arity())
	for _, t := range p.Args() {
		args = append(args, toBaseTerm(t))
	}
	return ast.Atom{Predicate: sym, Args: args}
}

func toBaseTerm(t logic.Term) ast.BaseTerm {
	switch {
	case t.IsInt():
		return ast.Number(int64(t.IntValue()))
	case t.IsVar():
		return ast.Variable{Symbol: t.SymValue()}
	default:
		return ast.String(t.SymValue())
	}
}

// fromConstant maps a Mangle constant back onto the logic vocabulary.
func fromConstant(c ast.Constant) logic.Term {
	if c.Type == ast.NumberType {
		return logic.Int(int(c.NumValue))
	}
	return logic.Sym(c.Symbol)
}

// declarations renders one Decl per logic kind.
func declarations() string {
	var b strings.Builder
	for _, k := range logic.Kinds() {
		vars := make([]string, k.Arity())
		for i := range vars {
			vars[i] = fmt.Sprintf("A%d", i)
		}
		fmt.Fprintf(&b, "Decl %s(%s).\n", k, strings.Join(vars, ", "))
	}
	return b.String()
}
