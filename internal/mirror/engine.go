package mirror

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"gridmind/internal/kb"
	"gridmind/internal/logging"
	"gridmind/internal/logic"
)

//go:embed beliefs.mg
var beliefs string

var (
	// ErrUndeclared is returned for queries over unknown predicates.
	ErrUndeclared = errors.New("mirror: undeclared predicate")
	// ErrQuery is returned for query text that does not parse as an atom.
	ErrQuery = errors.New("mirror: bad query")
)

// Binding maps query variable names to values.
type Binding map[string]logic.Term

// Engine evaluates the belief program over one loaded knowledge base.
type Engine struct {
	mu          sync.RWMutex
	programInfo *analysis.ProgramInfo
	store       factstore.FactStoreWithRemove
	index       map[string]ast.PredicateSym
	owner       string
}

// New parses and analyses the embedded belief program.
func New() (*Engine, error) {
	unit, err := parse.Unit(strings.NewReader(declarations() + beliefs))
	if err != nil {
		return nil, fmt.Errorf("mirror: parse beliefs: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("mirror: analyze beliefs: %w", err)
	}
	e := &Engine{
		programInfo: info,
		store:       factstore.NewSimpleInMemoryStore(),
		index:       make(map[string]ast.PredicateSym, len(info.Decls)),
	}
	for sym := range info.Decls {
		e.index[sym.Symbol] = sym
	}
	return e, nil
}

// Load replaces the engine's facts with k's and evaluates the derived
// predicates.
func (e *Engine) Load(k *kb.KB) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	timer := logging.StartTimer(logging.CategoryMirror, "mirror load")
	defer timer.Stop()

	store := factstore.NewSimpleInMemoryStore()
	atoms := Export(k)
	for _, a := range atoms {
		store.Add(a)
	}
	stats, err := mengine.EvalProgramWithStats(e.programInfo, store)
	if err != nil {
		logging.MirrorError("evaluation failed for %s: %v", k.Owner(), err)
		return fmt.Errorf("mirror: evaluate %s: %w", k.Owner(), err)
	}
	e.store = store
	e.owner = k.Owner()
	logging.MirrorDebug("loaded %d facts for %s: %+v", len(atoms), e.owner, stats)
	return nil
}

// Owner returns the owner of the loaded knowledge base.
func (e *Engine) Owner() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.owner
}

// Predicates returns every declared predicate name, sorted.
func (e *Engine) Predicates() []string {
	out := make([]string, 0, len(e.index))
	for name := range e.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of stored or derived facts of predicate.
func (e *Engine) Count(predicate string) int {
	sym, ok := e.index[predicate]
	if !ok {
		return 0
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	_ = e.store.GetFacts(ast.NewQuery(sym), func(ast.Atom) error {
		n++
		return nil
	})
	return n
}

// Query matches a single atom such as "open_neighbour(3, 1, X, Y)" against
// the loaded and derived facts. Bindings come back sorted by fact arguments.
// A query without variables yields one empty binding per match.
func (e *Engine) Query(text string) ([]Binding, error) {
	atom, err := parseQuery(text)
	if err != nil {
		return nil, err
	}
	sym, ok := e.index[atom.Predicate.Symbol]
	if !ok || sym.Arity != atom.Predicate.Arity {
		return nil, fmt.Errorf("%w: %s/%d", ErrUndeclared, atom.Predicate.Symbol, atom.Predicate.Arity)
	}

	e.mu.RLock()
	var matched []ast.Atom
	err = e.store.GetFacts(ast.NewQuery(sym), func(fact ast.Atom) error {
		if _, ok := match(atom, fact); ok {
			matched = append(matched, fact)
		}
		return nil
	})
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("mirror: query %s: %w", text, err)
	}

	sort.Slice(matched, func(i, j int) bool { return lessArgs(matched[i].Args, matched[j].Args) })
	out := make([]Binding, 0, len(matched))
	for _, fact := range matched {
		b, _ := match(atom, fact)
		out = append(out, b)
	}
	logging.MirrorDebug("query %s: %d results", text, len(out))
	return out, nil
}

func parseQuery(text string) (ast.Atom, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "?"))
	clean = strings.TrimSpace(strings.TrimSuffix(clean, "."))
	if clean == "" {
		return ast.Atom{}, fmt.Errorf("%w: empty", ErrQuery)
	}
	atom, err := parse.Atom(clean)
	if err != nil {
		return ast.Atom{}, fmt.Errorf("%w: %q: %v", ErrQuery, text, err)
	}
	return atom, nil
}

// match unifies a query atom with a ground fact. Repeated variables must
// bind the same value; "_" matches anything.
func match(query, fact ast.Atom) (Binding, bool) {
	b := Binding{}
	seen := map[string]ast.BaseTerm{}
	for i, arg := range query.Args {
		if i >= len(fact.Args) {
			return nil, false
		}
		val := fact.Args[i]
		switch q := arg.(type) {
		case ast.Variable:
			if q.Symbol == "_" {
				continue
			}
			if prev, ok := seen[q.Symbol]; ok {
				if !prev.Equals(val) {
					return nil, false
				}
				continue
			}
			seen[q.Symbol] = val
			if c, ok := val.(ast.Constant); ok {
				b[q.Symbol] = fromConstant(c)
			}
		default:
			if !arg.Equals(val) {
				return nil, false
			}
		}
	}
	return b, true
}

// lessArgs orders numbers before strings, then by value.
func lessArgs(a, b []ast.BaseTerm) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, okA := a[i].(ast.Constant)
		cb, okB := b[i].(ast.Constant)
		if !okA || !okB {
			continue
		}
		numA, numB := ca.Type == ast.NumberType, cb.Type == ast.NumberType
		switch {
		case numA && numB:
			if ca.NumValue != cb.NumValue {
				return ca.NumValue < cb.NumValue
			}
		case numA != numB:
			return numA
		default:
			if ca.Symbol != cb.Symbol {
				return ca.Symbol < cb.Symbol
			}
		}
	}
	return len(a) < len(b)
}
