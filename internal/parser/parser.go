// Package parser consumes tokenized diagram lines and grows a
// model.Model by recognizing the declaration forms of the recognized
// grammar: header/footer forms (model name, imports, variables, typed
// events) and body forms (state declarations, parent nesting,
// transitions, state actions).
package parser

import (
	"strconv"
	"strings"

	"github.com/hsmgen/plantgen/internal/diagnostics"
	"github.com/hsmgen/plantgen/internal/lexer"
	"github.com/hsmgen/plantgen/internal/model"
)

// Parser walks the input lines top to bottom, tracking whether it is
// inside the @startuml/@enduml block, inside header/footer, and the
// stack of currently-enclosing parent state ids. A Parser is single-use:
// construct one per Parse call.
type Parser struct {
	m    *model.Model
	diag *diagnostics.Sink

	inUML    bool
	inHeader bool
	inFooter bool

	parentNesting []int
	parentState   int
}

// Parse consumes lines in order and returns the populated Model.
// Malformed lines are reported to diag and skipped; Parse never aborts.
func Parse(lines []string, diag *diagnostics.Sink) *model.Model {
	p := &Parser{m: model.New(), diag: diag}
	for i, line := range lines {
		p.line(i+1, line)
	}
	return p.m
}

func (p *Parser) line(lineNo int, raw string) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case !p.inUML && trimmed == "@startuml":
		p.inUML = true
		return
	case p.inUML && trimmed == "@enduml":
		p.inUML = false
		return
	case !p.inUML:
		return
	}

	p.m.AddUMLLine(raw)

	switch trimmed {
	case "header":
		p.inHeader = true
		return
	case "footer":
		p.inFooter = true
		return
	case "endheader":
		p.inHeader = false
		return
	case "endfooter":
		p.inFooter = false
		return
	}

	tokens := lexer.Tokenize(raw)
	if len(tokens) == 0 {
		return
	}

	if p.inHeader || p.inFooter {
		p.headerLine(lineNo, tokens)
	} else {
		p.bodyLine(lineNo, tokens)
	}
}

func (p *Parser) headerLine(lineNo int, tokens []string) {
	switch tokens[0] {
	case "model":
		if len(tokens) != 2 {
			p.diag.Syntax(lineNo, "malformed model declaration")
			return
		}
		p.m.SetName(tokens[1])

	case "import":
		switch {
		case len(tokens) == 2:
			p.m.AddImport(model.Import{Content: tokens[1], Scope: model.ScopeLocal})
		case len(tokens) == 3 && tokens[1] == "global":
			p.m.AddImport(model.Import{Content: tokens[2], Scope: model.ScopeGlobal})
		default:
			p.diag.Syntax(lineNo, "malformed import declaration")
		}

	case "private", "public":
		if len(tokens) < 5 {
			p.diag.Syntax(lineNo, "malformed variable declaration")
			return
		}
		v := model.Variable{Name: tokens[2], Type: tokens[4]}
		if tokens[0] == "private" {
			v.Visibility = model.Private
		} else {
			v.Visibility = model.Public
		}
		if len(tokens) == 7 {
			v.HasInitial = true
			v.InitialValue = tokens[6]
		}
		p.m.AddVariable(v)

	case "in", "out":
		if len(tokens) < 3 || tokens[1] != "event" {
			p.diag.Syntax(lineNo, "malformed event declaration")
			return
		}
		ev := model.Event{Name: tokens[2]}
		if tokens[0] == "in" {
			ev.Direction = model.DirIncoming
		} else {
			ev.Direction = model.DirOutgoing
		}
		if len(tokens) == 5 {
			ev.RequireParam = true
			ev.ParameterType = tokens[4]
		}
		p.addEvent(lineNo, ev)

	case "event":
		if len(tokens) < 2 {
			p.diag.Syntax(lineNo, "malformed event declaration")
			return
		}
		ev := model.Event{Name: tokens[1], Direction: model.DirInternal}
		if len(tokens) == 4 {
			ev.RequireParam = true
			ev.ParameterType = tokens[3]
		}
		p.addEvent(lineNo, ev)

	default:
		p.diag.Syntax(lineNo, "unrecognized header/footer form")
	}
}

func (p *Parser) bodyLine(lineNo int, tokens []string) {
	switch {
	case tokens[0] == "state" && len(tokens) > 1:
		p.stateDecl(lineNo, tokens)

	case len(tokens) > 2 && isTrArrow(tokens[1]):
		p.transition(lineNo, tokens)

	case len(tokens) > 2 && tokens[1] == ":":
		p.stateAction(lineNo, tokens)

	case tokens[0] == "}":
		p.popParent()

	default:
		p.diag.Syntax(lineNo, "unrecognized line: %s", strings.Join(tokens, " "))
	}
}

func isTrArrow(tok string) bool {
	return strings.HasPrefix(tok, "-") && strings.HasSuffix(tok, ">")
}

// pseudoKind recognizes the two pseudostate names that always carry a
// fixed kind regardless of how they were declared ("initial"/"final",
// substituted in from the "[*]" shorthand by the transition parser).
// Every other name defaults to Normal unless explicitly marked choice.
func pseudoKind(name string) model.StateKind {
	switch name {
	case "initial":
		return model.StateInitial
	case "final":
		return model.StateFinal
	default:
		return model.StateNormal
	}
}

func (p *Parser) stateDecl(lineNo int, tokens []string) {
	name := tokens[1]
	kind := pseudoKind(name)
	openBrace := false

	if len(tokens) > 2 {
		switch tokens[2] {
		case "<<choice>>":
			kind = model.StateChoice
		case "{":
			openBrace = true
		}
	}

	if _, exists := p.m.StateByName(name); exists && name != "initial" && name != "final" {
		p.diag.Warn(lineNo, "duplicate state declaration: %s", name)
	}

	id := p.m.AddState(name, p.parentState, kind)
	if openBrace {
		if p.parentState != 0 {
			p.parentNesting = append(p.parentNesting, p.parentState)
		}
		p.parentState = id
	}
}

func (p *Parser) popParent() {
	if n := len(p.parentNesting); n > 0 {
		p.parentState = p.parentNesting[n-1]
		p.parentNesting = p.parentNesting[:n-1]
	} else {
		p.parentState = 0
	}
}

func (p *Parser) transition(lineNo int, tokens []string) {
	srcName := tokens[0]
	if srcName == "[*]" {
		srcName = "initial"
	}
	tgtName := tokens[2]
	if tgtName == "[*]" {
		tgtName = "final"
	}

	srcID := p.m.AddState(srcName, p.parentState, pseudoKind(srcName))
	tgtID := p.m.AddState(tgtName, p.parentState, pseudoKind(tgtName))

	t := model.Transition{Source: srcID, Target: tgtID}
	eventID := p.m.NullEvent()

	if len(tokens) > 4 && tokens[3] == ":" {
		switch {
		case strings.HasPrefix(tokens[4], "["):
			t.HasGuard = true
			t.Guard = joinGuard(tokens[4:])

		case tokens[4] == "after" || tokens[4] == "every":
			ev := model.Event{
				Name:        srcName + "_" + tokens[4] + "_",
				Direction:   model.DirIncoming,
				IsTimeEvent: true,
				IsPeriodic:  tokens[4] == "every",
			}
			for i := 5; i < len(tokens) && i < 7; i++ {
				ev.Name += tokens[i]
			}
			if len(tokens) > 6 {
				multiplier := uint64(1)
				switch tokens[6] {
				case "s":
					multiplier = 1000
				case "min":
					multiplier = 60000
				}
				count, err := strconv.ParseUint(tokens[5], 10, 64)
				if err != nil {
					p.diag.Syntax(lineNo, "invalid time-event duration %q", tokens[5])
				} else {
					ev.ExpireTimeMs = multiplier * count
				}
				if len(tokens) > 7 && strings.HasPrefix(tokens[7], "[") {
					t.HasGuard = true
					t.Guard = joinGuard(tokens[7:])
				}
			} else {
				p.diag.Syntax(lineNo, "no time unit specified on time event")
			}
			eventID = p.addEvent(lineNo, ev)

		default:
			ev := model.Event{Name: tokens[4], Direction: model.DirIncoming}
			if len(tokens) > 5 && strings.HasPrefix(tokens[5], "[") {
				t.HasGuard = true
				t.Guard = joinGuard(tokens[5:])
			}
			eventID = p.addEvent(lineNo, ev)
		}
	}

	t.Event = eventID
	p.m.AddTransition(t)
}

// joinGuard rejoins a guard's tokens (the first starting with "[", the
// last being the first token ending with "]") and strips the brackets.
// Tokens after the closing bracket are ignored; an unclosed guard runs
// to the end of the line.
func joinGuard(tokens []string) string {
	for i, tok := range tokens {
		if strings.HasSuffix(tok, "]") {
			tokens = tokens[:i+1]
			break
		}
	}
	joined := strings.TrimPrefix(strings.Join(tokens, " "), "[")
	return strings.TrimSuffix(joined, "]")
}

func (p *Parser) stateAction(lineNo int, tokens []string) {
	st, ok := p.m.StateByName(tokens[0])
	if !ok {
		p.diag.Semantic(lineNo, "action on undeclared state %s", tokens[0])
		return
	}

	if len(tokens) > 3 && tokens[3] == "/" {
		var kind model.DeclKind
		switch tokens[2] {
		case "entry":
			kind = model.DeclEntry
		case "exit":
			kind = model.DeclExit
		case "oncycle":
			kind = model.DeclOnCycle
		default:
			p.diag.Syntax(lineNo, "unrecognized state action kind %q", tokens[2])
			return
		}

		for i := 4; i < len(tokens)-1; i++ {
			if tokens[i] == "raise" {
				p.addEvent(lineNo, model.Event{Name: tokens[i+1], Direction: model.DirInternal})
			}
		}

		p.m.AddDeclaration(model.Declaration{
			StateID: st.ID,
			Kind:    kind,
			Body:    strings.Join(tokens[4:], " "),
		})
		return
	}

	p.m.AddDeclaration(model.Declaration{
		StateID: st.ID,
		Kind:    model.DeclComment,
		Body:    strings.Join(tokens[2:], " "),
	})
}

// addEvent registers ev, warning on a duplicate declaration (first
// definition wins), and returns the event's canonical id.
func (p *Parser) addEvent(lineNo int, ev model.Event) int {
	if _, exists := p.m.EventByName(ev.Name); exists {
		p.diag.Warn(lineNo, "duplicate event declaration: %s", ev.Name)
	}
	return p.m.AddEvent(ev)
}
