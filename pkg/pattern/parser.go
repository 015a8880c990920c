package pattern

import (
	"fmt"
	"strconv"
)

const (
	// MaxRepeat bounds the counts of x{m,n}. Each repetition copies the operand.
	MaxRepeat = 1000
	// MaxClassSize bounds the number of runes a class may expand to.
	MaxClassSize = 256
)

type parser struct {
	expr  string
	runes []rune
	pos   int
	depth int
}

// Parse parses expr into an AST.
func Parse(expr string) (Node, error) {
	p := &parser{expr: expr, runes: []rune(expr)}
	node, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// The only way alternation stops early is an unmatched ')'.
		return nil, p.errorf(ErrUnbalanced, "unexpected ')'")
	}
	return node, nil
}

func (p *parser) eof() bool  { return p.pos >= len(p.runes) }
func (p *parser) peek() rune { return p.runes[p.pos] }

func (p *parser) errorf(err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expr: p.expr, Pos: p.pos, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) alternation() (Node, error) {
	var branches []Node
	for {
		branch, err := p.concatenation()
		if err != nil {
			return nil, err
		}
		if alt, ok := branch.(*Alternate); ok {
			branches = append(branches, alt.Nodes...)
		} else {
			branches = append(branches, branch)
		}
		if p.eof() || p.peek() != '|' {
			break
		}
		p.pos++
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Alternate{Nodes: branches}, nil
}

func (p *parser) concatenation() (Node, error) {
	var items []Node
	for !p.eof() {
		switch p.peek() {
		case '|':
			return joinConcat(items), nil
		case ')':
			if p.depth == 0 {
				return nil, p.errorf(ErrUnbalanced, "unexpected ')'")
			}
			return joinConcat(items), nil
		}
		item, err := p.repetition()
		if err != nil {
			return nil, err
		}
		if c, ok := item.(*Concat); ok {
			items = append(items, c.Nodes...)
		} else if item.Type() != NodeEmpty {
			items = append(items, item)
		}
	}
	return joinConcat(items), nil
}

func joinConcat(items []Node) Node {
	switch len(items) {
	case 0:
		return &Empty{}
	case 1:
		return items[0]
	}
	return &Concat{Nodes: items}
}

func (p *parser) repetition() (Node, error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}
	for !p.eof() {
		lo, hi := 0, 0
		switch p.peek() {
		case '*':
			lo, hi = 0, -1
			p.pos++
		case '+':
			lo, hi = 1, -1
			p.pos++
		case '?':
			lo, hi = 0, 1
			p.pos++
		case '{':
			lo, hi, err = p.bounds()
			if err != nil {
				return nil, err
			}
		default:
			return node, nil
		}
		node = &Repeat{Body: node, Min: lo, Max: hi}
	}
	return node, nil
}

// bounds parses {m}, {m,} or {m,n} starting at '{'.
func (p *parser) bounds() (int, int, error) {
	start := p.pos
	p.pos++
	lo, ok := p.number()
	if !ok {
		return 0, 0, p.errorf(ErrBadRepeat, "expected a count after '{'")
	}
	hi := lo
	if !p.eof() && p.peek() == ',' {
		p.pos++
		hi = -1
		if n, ok := p.number(); ok {
			hi = n
		}
	}
	if p.eof() || p.peek() != '}' {
		return 0, 0, p.errorf(ErrBadRepeat, "expected '}'")
	}
	p.pos++
	if lo > MaxRepeat || hi > MaxRepeat {
		p.pos = start
		return 0, 0, p.errorf(ErrBadRepeat, "count exceeds %d", MaxRepeat)
	}
	if hi >= 0 && hi < lo {
		p.pos = start
		return 0, 0, p.errorf(ErrBadRepeat, "{%d,%d} has max below min", lo, hi)
	}
	return lo, hi, nil
}

func (p *parser) number() (int, bool) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start || p.pos-start > 9 {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.runes[start:p.pos]))
	return n, err == nil
}

func (p *parser) atom() (Node, error) {
	r := p.peek()
	switch r {
	case '*', '+', '?', '{':
		return nil, p.errorf(ErrMissingOperand, "nothing to repeat before %q", r)
	case '.':
		p.pos++
		return &Any{}, nil
	case '(':
		open := p.pos
		p.pos++
		p.depth++
		node, err := p.alternation()
		if err != nil {
			return nil, err
		}
		p.depth--
		if p.eof() {
			p.pos = open
			return nil, p.errorf(ErrUnbalanced, "missing ')'")
		}
		p.pos++
		return node, nil
	case '[':
		return p.class()
	case '\\':
		r, err := p.escape()
		if err != nil {
			return nil, err
		}
		return &Literal{Rune: r}, nil
	}
	p.pos++
	return &Literal{Rune: r}, nil
}

func (p *parser) escape() (rune, error) {
	p.pos++
	if p.eof() {
		return 0, p.errorf(ErrTrailingEscape, "")
	}
	r := p.peek()
	p.pos++
	return r, nil
}

func (p *parser) class() (Node, error) {
	open := p.pos
	p.pos++
	if !p.eof() && p.peek() == '^' {
		return nil, p.errorf(ErrBadClass, "negated classes are not supported")
	}

	var ranges []RuneRange
	size := 0
	for {
		if p.eof() {
			p.pos = open
			return nil, p.errorf(ErrUnbalanced, "missing ']'")
		}
		if p.peek() == ']' {
			p.pos++
			break
		}
		lo, err := p.classRune()
		if err != nil {
			return nil, err
		}
		hi := lo
		if p.pos+1 < len(p.runes) && p.peek() == '-' && p.runes[p.pos+1] != ']' {
			p.pos++
			if hi, err = p.classRune(); err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf(ErrBadClass, "range %q-%q is reversed", lo, hi)
			}
		}
		size += int(hi-lo) + 1
		if size > MaxClassSize {
			return nil, p.errorf(ErrBadClass, "class expands to more than %d runes", MaxClassSize)
		}
		ranges = append(ranges, RuneRange{Lo: lo, Hi: hi})
	}
	if len(ranges) == 0 {
		p.pos = open
		return nil, p.errorf(ErrBadClass, "empty class")
	}
	return &Class{Ranges: ranges}, nil
}

func (p *parser) classRune() (rune, error) {
	if p.peek() == '\\' {
		return p.escape()
	}
	r := p.peek()
	p.pos++
	return r, nil
}
