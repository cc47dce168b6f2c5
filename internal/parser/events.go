package parser

import (
	"github.com/sflang/sfl/internal/cst"
	"github.com/sflang/sfl/internal/lexer"
)

// eventKind discriminates the three records in the parser's event
// buffer (spec.md §4.2).
type eventKind int

const (
	eventOpen eventKind = iota
	eventClose
	eventAdvance
)

type event struct {
	kind     eventKind
	treeKind cst.Kind    // valid when kind == eventOpen
	token    lexer.Token // valid when kind == eventAdvance
}

// MarkOpened is a handle to an Open event, returned by open() so a
// caller can later close it or retroactively wrap it via open_before.
type MarkOpened struct{ index int }

// MarkClosed is a handle to a closed subtree, used only as the target
// of open_before.
type MarkClosed struct{ index int }

// open emits an Open{ErrorTree} placeholder and returns a handle to
// it. The placeholder's kind is overwritten by close().
func (p *Parser) open() MarkOpened {
	m := MarkOpened{index: len(p.events)}
	p.events = append(p.events, event{kind: eventOpen, treeKind: cst.KindError})
	return m
}

// close overwrites the placeholder at m with the real kind and emits a
// matching Close event.
func (p *Parser) close(m MarkOpened, kind cst.Kind) MarkClosed {
	p.events[m.index].treeKind = kind
	p.events = append(p.events, event{kind: eventClose})
	return MarkClosed{index: m.index}
}

// openBefore inserts an Open{ErrorTree} at m's index, shifting every
// later event one slot to the right. This is the backpatching trick
// that lets a closed subtree retroactively become the left child of a
// new parent — the mechanism that makes left-recursive application and
// binary-operator parsing possible without backtracking (spec.md §4.2,
// §9).
func (p *Parser) openBefore(m MarkClosed) MarkOpened {
	newEvent := event{kind: eventOpen, treeKind: cst.KindError}
	p.events = append(p.events, event{}) // grow by one
	copy(p.events[m.index+1:], p.events[m.index:len(p.events)-1])
	p.events[m.index] = newEvent
	return MarkOpened{index: m.index}
}

// advance emits an Advance event for the current token and moves the
// parser's cursor forward, refilling fuel for the next token.
func (p *Parser) advance() {
	if p.at(lexer.Eof) {
		// Never consume past Eof; callers must check IsEnd()/at(Eof)
		// before calling advance().
		return
	}
	p.events = append(p.events, event{kind: eventAdvance, token: p.tokens[p.pos]})
	p.pos++
	p.fuel = 256
}

// advanceWithError wraps the current token in an ErrorTree and records
// a diagnostic, used when no prefix rule applies at an
// expression_delim entry (spec.md §4.2's recovery rule: consume one
// token inside an ErrorTree and continue).
func (p *Parser) advanceWithError(msg string) MarkClosed {
	m := p.open()
	p.reportError(msg, p.currentSpan())
	if !p.isEnd() {
		p.advance()
	}
	return p.close(m, cst.KindError)
}

// buildTree reduces the flat event list into a cst.Tree. Open pushes
// an empty tree onto a stack; Advance appends the next consumed token
// to the tree on top of the stack; Close pops the top of the stack and
// appends it as a child of the tree now on top. A final Close of the
// virtual root is popped before the reduction begins, so what remains
// on the stack once every other event is processed is the root tree
// itself (spec.md §4.2). Invariant: Open/Close are balanced and the
// Advance count equals the number of tokens consumed.
func buildTree(events []event) *cst.Tree {
	if len(events) == 0 {
		return &cst.Tree{Kind: cst.KindError}
	}

	body := events[:len(events)-1] // drop the virtual root's final Close

	var stack []*cst.Tree

	for _, e := range body {
		switch e.kind {
		case eventOpen:
			stack = append(stack, &cst.Tree{Kind: e.treeKind})
		case eventClose:
			n := len(stack)
			closed := stack[n-1]
			stack = stack[:n-1]
			top := stack[len(stack)-1]
			top.Children = append(top.Children, cst.TreeChild(closed))
		case eventAdvance:
			top := stack[len(stack)-1]
			top.Children = append(top.Children, cst.TokenChild(e.token))
		}
	}

	if len(stack) != 1 {
		return &cst.Tree{Kind: cst.KindError}
	}
	return stack[0]
}
