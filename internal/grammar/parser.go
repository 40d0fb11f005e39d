package grammar

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pgn-report-go/internal/chess"
	pgnerrors "github.com/lgbarn/pgn-report-go/internal/errors"
)

// maxGotLength bounds the offending text quoted in a syntax error.
const maxGotLength = 24

// byteOrderMark is the UTF-8 encoding of U+FEFF, written by some exporters.
const byteOrderMark = "\ufeff"

// Parse matches the whole of text against rule and returns the parse tree.
// Whitespace around the match is allowed; anything else left over is an
// error. A leading byte order mark is dropped, and offsets count from the
// text after it. On failure the error is a *errors.SyntaxError located at
// the farthest point the grammar could reach.
//
// Parse keeps no state between calls and is safe for concurrent use.
func Parse(rule Rule, text string) (*Node, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	p := &parser{text: text, failPos: -1}

	p.skipWhitespace()
	node, ok := p.apply(rule)
	if ok {
		p.skipWhitespace()
		if p.pos < len(p.text) {
			p.fail(p.pos, "end of input")
			ok = false
		}
	}
	if !ok {
		return nil, p.syntaxError()
	}
	return node, nil
}

// ParseGame parses a complete game.
func ParseGame(text string) (*Node, error) {
	return Parse(RuleGame, text)
}

// parser holds the state of a single Parse call.
type parser struct {
	text string
	pos  int

	// Farthest failure seen and what was expected there
	failPos  int
	expected []string
}

// apply dispatches to the function for rule.
func (p *parser) apply(rule Rule) (*Node, bool) {
	switch rule {
	case RuleWord:
		return p.word()
	case RuleTagValue:
		return p.tagValue()
	case RuleTag:
		return p.tag()
	case RuleComment:
		return p.comment()
	case RuleMoveNumber:
		return p.moveNumber()
	case RuleMove:
		return p.move()
	case RuleMovePair:
		return p.movePair()
	case RuleMoveList:
		return p.moveList()
	case RuleResult:
		return p.result()
	case RuleGame:
		return p.game()
	}
	p.fail(p.pos, rule.Describe())
	return nil, false
}

// fail records that what was expected at pos.
func (p *parser) fail(pos int, what string) {
	switch {
	case pos > p.failPos:
		p.failPos = pos
		p.expected = append(p.expected[:0], what)
	case pos == p.failPos:
		for _, e := range p.expected {
			if e == what {
				return
			}
		}
		p.expected = append(p.expected, what)
	}
}

// syntaxError builds the error for the farthest failure.
func (p *parser) syntaxError() error {
	pos := p.failPos
	if pos < 0 {
		pos = p.pos
	}
	line, col := position(p.text, pos)
	return &pgnerrors.SyntaxError{
		Offset:   pos,
		Line:     line,
		Column:   col,
		Expected: joinExpected(p.expected),
		Got:      p.gotAt(pos),
	}
}

// gotAt describes the text found at pos.
func (p *parser) gotAt(pos int) string {
	if pos >= len(p.text) {
		return "end of input"
	}
	end := pos
	for end < len(p.text) && !isWhitespace(p.text[end]) && end-pos < maxGotLength {
		end++
	}
	if end == pos {
		end = pos + 1
	}
	return fmt.Sprintf("%q", p.text[pos:end])
}

// position converts a byte offset to a 1-based line and column.
func position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}

// joinExpected renders "a", "a or b", "a, b or c".
func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.text) && isWhitespace(p.text[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.text) {
		return 0
	}
	return p.text[p.pos]
}

// expectByte consumes c or records the failure.
func (p *parser) expectByte(c byte) bool {
	if p.peek() == c && p.pos < len(p.text) {
		p.pos++
		return true
	}
	p.fail(p.pos, fmt.Sprintf("'%c'", c))
	return false
}

func (p *parser) node(rule Rule, start int, value string, children ...*Node) *Node {
	return &Node{
		Rule:     rule,
		Start:    start,
		End:      p.pos,
		Text:     p.text[start:p.pos],
		Value:    value,
		Children: children,
	}
}

// word matches one or more characters that are neither whitespace nor '"'.
func (p *parser) word() (*Node, bool) {
	start := p.pos
	for p.pos < len(p.text) && !isWhitespace(p.text[p.pos]) && p.text[p.pos] != '"' {
		p.pos++
	}
	if p.pos == start {
		p.fail(start, RuleWord.Describe())
		return nil, false
	}
	return p.node(RuleWord, start, p.text[start:p.pos]), true
}

// tagValue matches a quoted string. Backslash escapes '"' and '\'.
func (p *parser) tagValue() (*Node, bool) {
	start := p.pos
	if p.peek() != '"' {
		p.fail(start, RuleTagValue.Describe())
		return nil, false
	}
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.text) {
		ch := p.text[p.pos]
		p.pos++
		switch {
		case ch == '\\' && p.pos < len(p.text) && (p.text[p.pos] == '"' || p.text[p.pos] == '\\'):
			sb.WriteByte(p.text[p.pos])
			p.pos++
		case ch == '"':
			return p.node(RuleTagValue, start, sb.String()), true
		default:
			sb.WriteByte(ch)
		}
	}

	p.fail(p.pos, "closing '\"'")
	p.pos = start
	return nil, false
}

// tag matches [Name "Value"].
func (p *parser) tag() (*Node, bool) {
	start := p.pos
	if p.peek() != '[' {
		p.fail(start, RuleTag.Describe())
		return nil, false
	}
	p.pos++

	p.skipWhitespace()
	key, ok := p.word()
	if !ok {
		p.pos = start
		return nil, false
	}
	p.skipWhitespace()
	value, ok := p.tagValue()
	if !ok {
		p.pos = start
		return nil, false
	}
	p.skipWhitespace()
	if !p.expectByte(']') {
		p.pos = start
		return nil, false
	}
	return p.node(RuleTag, start, "", key, value), true
}

// comment matches { text }. The body may span lines but cannot contain '}'.
func (p *parser) comment() (*Node, bool) {
	start := p.pos
	if p.peek() != '{' {
		p.fail(start, RuleComment.Describe())
		return nil, false
	}
	end := strings.IndexByte(p.text[start+1:], '}')
	if end < 0 {
		p.fail(len(p.text), "'}'")
		return nil, false
	}
	body := p.text[start+1 : start+1+end]
	p.pos = start + end + 2
	return p.node(RuleComment, start, strings.TrimSpace(body)), true
}

// moveNumber matches digits followed by a dot, as a single token.
func (p *parser) moveNumber() (*Node, bool) {
	start := p.pos
	end := start
	for end < len(p.text) && p.text[end] >= '0' && p.text[end] <= '9' {
		end++
	}
	if end == start || end >= len(p.text) || p.text[end] != '.' {
		p.fail(start, RuleMoveNumber.Describe())
		return nil, false
	}
	p.pos = end + 1
	return p.node(RuleMoveNumber, start, p.text[start:end]), true
}

// move gathers the run of move characters and checks it as a whole, so a
// bad move is reported at its first character.
func (p *parser) move() (*Node, bool) {
	start := p.pos
	end := start
	for end < len(p.text) && moveChars[p.text[end]] {
		end++
	}
	if end == start || !ValidMove(p.text[start:end]) {
		p.fail(start, RuleMove.Describe())
		return nil, false
	}
	p.pos = end
	return p.node(RuleMove, start, p.text[start:end]), true
}

// movePair matches: number move [comment] [move [comment]].
func (p *parser) movePair() (*Node, bool) {
	start := p.pos
	number, ok := p.moveNumber()
	if !ok {
		return nil, false
	}
	p.skipWhitespace()
	white, ok := p.move()
	if !ok {
		p.pos = start
		return nil, false
	}
	children := []*Node{number, white}

	if c, ok := p.optional(p.comment); ok {
		children = append(children, c)
	}
	if m, ok := p.optional(p.move); ok {
		children = append(children, m)
		if c, ok := p.optional(p.comment); ok {
			children = append(children, c)
		}
	}
	return p.node(RuleMovePair, start, "", children...), true
}

// optional skips whitespace and tries f, rewinding on failure.
func (p *parser) optional(f func() (*Node, bool)) (*Node, bool) {
	save := p.pos
	p.skipWhitespace()
	n, ok := f()
	if !ok {
		p.pos = save
	}
	return n, ok
}

// moveList matches zero or more move pairs.
func (p *parser) moveList() (*Node, bool) {
	start := p.pos
	var pairs []*Node
	for {
		pair, ok := p.optional(p.movePair)
		if !ok {
			break
		}
		pairs = append(pairs, pair)
	}
	if len(pairs) > 0 {
		start = pairs[0].Start
	}
	return p.node(RuleMoveList, start, "", pairs...), true
}

// result matches one of the four result tokens.
func (p *parser) result() (*Node, bool) {
	start := p.pos
	// Longest first, so 1/2-1/2 is not cut short
	for _, r := range []string{chess.ResultDraw, chess.ResultWhiteWins, chess.ResultBlackWins, chess.ResultUnknown} {
		if strings.HasPrefix(p.text[start:], r) {
			p.pos = start + len(r)
			return p.node(RuleResult, start, r), true
		}
	}
	p.fail(start, RuleResult.Describe())
	return nil, false
}

// game matches zero or more tags, the move list and the result.
func (p *parser) game() (*Node, bool) {
	start := p.pos
	var children []*Node
	for {
		t, ok := p.optional(p.tag)
		if !ok {
			break
		}
		children = append(children, t)
	}

	moves, _ := p.optional(p.moveList)
	children = append(children, moves)

	res, ok := p.optional(p.result)
	if !ok {
		p.pos = start
		return nil, false
	}
	children = append(children, res)
	return p.node(RuleGame, start, "", children...), true
}
