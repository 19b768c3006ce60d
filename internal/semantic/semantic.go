// Package semantic computes everything the Emitter needs that is not
// directly stored in the Model: least-common-ancestor between any two
// states, the ordered exit/entry paths a transition must walk, the
// initial super-step path from the top, composite entry paths into any
// state (recursively following `initial` children), and choice
// pseudostate branch ordering.
package semantic

import "github.com/hsmgen/plantgen/internal/model"

// Analyzer computes derived structural information over a frozen Model.
// It performs no mutation and holds no state of its own beyond the
// Model reference.
type Analyzer struct {
	m *model.Model
}

// New returns an Analyzer over m.
func New(m *model.Model) *Analyzer {
	return &Analyzer{m: m}
}

// ancestry returns stateID's ancestor chain starting at stateID itself
// and climbing to the virtual top (id 0), inclusive of 0 as the final
// element — the same shape as a composite-state hierarchy walk that
// terminates at a common root, just with 0 standing in for a real root
// node.
func (a *Analyzer) ancestry(stateID int) []int {
	path := []int{stateID}
	for st, ok := a.m.StateByID(stateID); ok && st.Parent != 0; st, ok = a.m.StateByID(st.Parent) {
		path = append(path, st.Parent)
	}
	path = append(path, 0)
	return path
}

// LCA returns the least common ancestor of s and t. For a self-transition
// (s == t) this is s's parent, not s itself, so that an external
// self-transition still exits and re-enters s — the degenerate case of
// the same backward-walk used for any other pair.
func (a *Analyzer) LCA(s, t int) int {
	srcPath := a.ancestry(s)
	dstPath := a.ancestry(t)

	i, j := len(srcPath)-2, len(dstPath)-2
	for i > 0 && j > 0 && srcPath[i] == dstPath[j] {
		i--
		j--
	}
	return srcPath[i+1]
}

// ExitPath returns the states to exit for a transition leaving `from`
// up to (but not including) lca, innermost first.
func (a *Analyzer) ExitPath(from, lca int) []int {
	var out []int
	for st, ok := a.m.StateByID(from); ok && st.ID != lca; st, ok = a.m.StateByID(st.Parent) {
		out = append(out, st.ID)
		if st.Parent == lca {
			break
		}
	}
	return out
}

// ancestorChainBelow returns the chain of states strictly between lca
// and target, inclusive of target, ordered outermost first (i.e. the
// child of lca first, target last).
func (a *Analyzer) ancestorChainBelow(lca, target int) []int {
	path := a.ancestry(target)
	idx := len(path) - 1
	for i, id := range path {
		if id == lca {
			idx = i
			break
		}
	}
	chain := make([]int, 0, idx)
	for i := idx - 1; i >= 0; i-- {
		chain = append(chain, path[i])
	}
	return chain
}

// initialDescent recursively follows `initial` children starting from s,
// stopping as soon as the followed-to state is a Choice pseudostate (its
// resolution happens separately, see ChoiceBranches), or as soon as
// there is no further initial child. s itself is not included in the
// result.
func (a *Analyzer) initialDescent(s int) []int {
	var out []int
	cur := s
	for {
		initChild, ok := a.m.InitialChild(cur)
		if !ok {
			break
		}
		transitions := a.m.TransitionsFrom(initChild.ID)
		if len(transitions) == 0 {
			break
		}
		target := transitions[0].Target
		out = append(out, target)
		if st, ok := a.m.StateByID(target); !ok || st.Kind == model.StateChoice {
			break
		}
		cur = target
	}
	return out
}

// FindEntryPath returns the composite entry path starting at target
// itself (outermost) and descending through its `initial` children
// (deepest last), stopping at a Choice pseudostate.
func (a *Analyzer) FindEntryPath(target int) []int {
	return append([]int{target}, a.initialDescent(target)...)
}

// EntryPath returns the full ordered entry path a transition into target
// must walk once lca has been computed: the ancestor chain from just
// below lca down to target, followed by target's own composite descent.
func (a *Analyzer) EntryPath(lca, target int) []int {
	chain := a.ancestorChainBelow(lca, target)
	if len(chain) == 0 {
		return a.FindEntryPath(target)
	}
	return append(chain, a.initialDescent(target)...)
}

// FindInitialPath returns the machine's initial super-step: the entry
// path starting at the top-level `initial` pseudostate's transition
// target, descending through composite `initial` chains. Returns nil if
// no top-level initial transition exists; Validate does not report that
// case, the Emitter reports it as an InternalError.
func (a *Analyzer) FindInitialPath() []int {
	topInitial, ok := a.m.TopInitial()
	if !ok {
		return nil
	}
	transitions := a.m.TransitionsFrom(topInitial.ID)
	if len(transitions) == 0 {
		return nil
	}
	return a.FindEntryPath(transitions[0].Target)
}

// ChoiceBranches splits a Choice state's outgoing transitions into the
// ordered guarded branches (evaluated in declaration order at runtime)
// and the single default (guardless) branch. ok is false if the choice
// does not have exactly one default branch — a SemanticError the caller
// should report and then skip emitting this choice's branches.
func (a *Analyzer) ChoiceBranches(choiceID int) (guarded []model.Transition, def model.Transition, ok bool) {
	var defaults []model.Transition
	for _, t := range a.m.TransitionsFrom(choiceID) {
		if t.HasGuard {
			guarded = append(guarded, t)
		} else {
			defaults = append(defaults, t)
		}
	}
	if len(defaults) != 1 {
		return guarded, model.Transition{}, false
	}
	return guarded, defaults[0], true
}
