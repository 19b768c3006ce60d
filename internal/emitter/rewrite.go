package emitter

import (
	"fmt"
	"strings"

	"github.com/hsmgen/plantgen/internal/lexer"
	"github.com/hsmgen/plantgen/internal/model"
)

// rewriteBody rewrites an action body: `${name}` references and bare
// `raise EVENT` keywords become qualified Go expressions/calls. Spec §9
// prescribes exactly this shape — tokenize, substitute, re-serialize —
// rather than a sequence of in-place string edits.
func (e *emitter) rewriteBody(body string) string {
	tokens := lexer.Tokenize(body)
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "raise":
			if i+1 >= len(tokens) {
				out = append(out, "/* raise: missing event name */")
				continue
			}
			name := strings.TrimSuffix(tokens[i+1], ";")
			ev, ok := e.m.EventByName(name)
			if !ok {
				out = append(out, fmt.Sprintf("/* unresolved raise %s */", name))
				i++
				continue
			}
			out = append(out, fmt.Sprintf("sm.%s()", e.s.EventRaise(ev)))
			i++

		case strings.HasPrefix(tok, "${"):
			out = append(out, e.rewriteVarToken(tok))

		default:
			// The model's action/guard vocabulary (`=`, `==`, `&&`,
			// `||`, `!`, literals) is already valid Go, so every other
			// token passes through verbatim.
			out = append(out, tok)
		}
	}
	return strings.Join(out, " ")
}

// rewriteGuard rewrites a bracket-stripped guard expression the same way
// as an action body (guards only ever reference ${var}, never raise).
func (e *emitter) rewriteGuard(guard string) string {
	return e.rewriteBody(guard)
}

// rewriteVarToken expands one `${name}` token (with any trailing
// punctuation, e.g. `${timeout};`) into a qualified field access into
// the variable's private/public partition.
func (e *emitter) rewriteVarToken(tok string) string {
	trailing := ""
	for len(tok) > 0 && !strings.HasSuffix(tok, "}") {
		trailing = tok[len(tok)-1:] + trailing
		tok = tok[:len(tok)-1]
	}
	name := strings.TrimSuffix(strings.TrimPrefix(tok, "${"), "}")

	if v, ok := e.m.VariableByName(name); ok {
		partition := "Private"
		if v.Visibility == model.Public {
			partition = "Public"
		}
		return fmt.Sprintf("sm.vars.%s.%s%s", partition, capitalizeIdent(v.Name), trailing)
	}

	return fmt.Sprintf("/* unresolved var %s */%s", name, trailing)
}
