package intexpr

// Sequence    = Condition { ',' Condition }
// Condition   = Boolean { '?' Alternation }
// Alternation = Condition [ '!' Condition ]
// Boolean     = Relation { ('&&' | '||' | '><') Relation }
// Relation    = Bitwise { ('==' | '<>' | '<=' | '<' | '>=' | '>') Bitwise }
// Bitwise     = Additive { ('&' | '|' | '^') Additive }
// Additive    = Multiplicative { ('+' | '-') Multiplicative }
// Multiplicative = Shift { ('*' | '/' | '\') Shift }
// Shift       = Unary { ('<<' | '>>') Unary }
// Unary       = ('?' | '!' | '~' | '-' | '+' | ExtOp) Unary | Primary
// ExtOp       = '<' | '>' | '&' | '|' | '^' | '*' | '/' | '\' | '@' | '='
// Primary     = num | '%' reg | '(' Sequence ')' | any

// parser holds the state of one evaluation. The evaluation-active flag is not
// part of the parser; every level receives it as an argument.
type parser struct {
	cursor
	// regs is the register bank. It may be nil.
	regs *Registers
	// hook applies extension operators.
	hook Hook
	// depth is the current nesting depth, counted at the unary level and at
	// each conditional branch.
	depth int
	// max is the depth limit, or 0 for no limit.
	max int
	// err is the first error that occurred.
	err error
}

// fail records an error. Only the first error is kept.
func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// abort records an error and moves the cursor past the end of the input so
// that every level stops.
func (p *parser) abort(err error) {
	p.fail(err)
	p.pos = len(p.src) + 1
}

// enter increases the nesting depth. If that exceeds the limit, it aborts the
// parse and returns false. Each successful call must be paired with leave.
func (p *parser) enter() bool {
	if p.max > 0 && p.depth >= p.max {
		p.abort(&DepthError{Col: p.col(), Limit: p.max})
		return false
	}
	p.depth++
	return true
}

// leave decreases the nesting depth.
func (p *parser) leave() {
	p.depth--
}

// sequence parses a comma-separated list of conditions. The value is that of
// the last one.
func (p *parser) sequence(active bool) uint64 {
	l := p.condition(active)
	for {
		p.skipspace()
		if p.peek(0) != ',' {
			return l
		}
		p.pos++
		l = p.condition(active)
	}
}

// condition parses a boolean-level term followed by any number of
// alternations, each using the previous result as its condition.
func (p *parser) condition(active bool) uint64 {
	l := p.binary(levelBool, active)
	for {
		p.skipspace()
		if p.peek(0) != '?' {
			return l
		}
		p.pos++
		l = p.alternation(active, l)
	}
}

// alternation parses the branches following a '?'. Each branch is active only
// if it is the one selected by cond. A chain of conditionals recurses here
// without passing through unary, so the branches count toward the depth.
func (p *parser) alternation(active bool, cond uint64) uint64 {
	if !p.enter() {
		return 0
	}
	defer p.leave()
	then := p.condition(active && cond != 0)
	p.skipspace()
	if p.peek(0) != '!' {
		if cond == 0 {
			return 0
		}
		return then
	}
	p.pos++
	els := p.condition(active && cond == 0)
	if cond == 0 {
		return els
	}
	return then
}

// level is a binary operator precedence level. Higher levels bind less
// tightly.
type level int8

const (
	levelUnary level = iota
	levelShift
	levelMul
	levelAdd
	levelBit
	levelRel
	levelBool
)

// binary parses a left-associative chain of operators at a level. Operands
// are parsed at the next tighter level.
func (p *parser) binary(lv level, active bool) uint64 {
	if lv == levelUnary {
		return p.unary(active)
	}
	l := p.binary(lv-1, active)
	for {
		p.skipspace()
		op := binop(lv, p.peek(0), p.peek(1))
		if op.kind == opNone {
			return l
		}
		col := p.col()
		p.pos += op.width
		r := p.binary(lv-1, active)
		l = p.apply(op.kind, l, r, col)
	}
}

// unary parses prefix operators.
func (p *parser) unary(active bool) uint64 {
	if !p.enter() {
		return 0
	}
	defer p.leave()
	p.skipspace()
	switch c := p.peek(0); c {
	case '?':
		p.pos++
		return truth(p.unary(active) != 0)
	case '!':
		p.pos++
		return truth(p.unary(active) == 0)
	case '~':
		p.pos++
		return ^p.unary(active)
	case '-':
		p.pos++
		return -p.unary(active)
	case '+':
		p.pos++
		return p.unary(active)
	case '<', '>', '&', '|', '^', '*', '/', '\\', '@', '=':
		p.pos++
		x := p.unary(active)
		if active {
			x = p.hook.Apply(c, x)
		}
		return x
	default:
		return p.primary(active)
	}
}

// primary parses a literal, a register, or a parenthesized sequence. Any other
// character, including the end of input, is consumed and yields 0.
func (p *parser) primary(active bool) uint64 {
	p.skipspace()
	if p.end() {
		p.fail(&EmptyExpressionError{Col: p.col()})
		p.skip()
		return 0
	}
	switch c := p.src[p.pos]; {
	case isdigit(c):
		return p.scanNum()
	case c == '%':
		p.pos++
		if p.end() {
			p.fail(&EmptyExpressionError{Col: p.col()})
		}
		k, ok := RegisterIndex(p.peek(0))
		p.skip()
		if !ok || !active {
			return 0
		}
		return p.regs.read(k)
	case c == '(':
		col := p.col()
		p.pos++
		v := p.sequence(active)
		p.skipspace()
		switch {
		case p.end():
			p.fail(&BracketError{Col: col})
			p.skip()
		case p.src[p.pos] == ')':
			p.pos++
		}
		return v
	default:
		p.skip()
		return 0
	}
}

type opKind int8

const (
	opNone opKind = iota

	opShl  // l << r, 0 for r >= 64
	opShr  // l >> r, 0 for r >= 64
	opMul  // l * r
	opDiv  // l / r
	opMod  // l % r
	opAdd  // l + r
	opSub  // l - r
	opAnd  // l & r
	opOr   // l | r
	opXor  // l ^ r
	opBoth // l && r, spelled ==
	opNe   // l != r
	opLe   // l <= r
	opLt   // l < r
	opGe   // l >= r
	opGt   // l > r
	opLand // l && r
	opLor  // l || r
	opLxor // truth of l != truth of r
)

type operator struct {
	// kind is the operation.
	kind opKind
	// width is the length of the operator token.
	width int
}

// binop gets the binary operator at a level whose token starts with c, d. If
// there is no such operator, the result has a kind of opNone.
func binop(lv level, c, d byte) operator {
	switch lv {
	case levelShift:
		switch {
		case c == '<' && d == '<':
			return operator{opShl, 2}
		case c == '>' && d == '>':
			return operator{opShr, 2}
		}
	case levelMul:
		switch c {
		case '*':
			return operator{opMul, 1}
		case '/':
			return operator{opDiv, 1}
		case '\\':
			return operator{opMod, 1}
		}
	case levelAdd:
		switch c {
		case '+':
			return operator{opAdd, 1}
		case '-':
			return operator{opSub, 1}
		}
	case levelBit:
		// && and || belong to the boolean level.
		switch {
		case c == '&' && d != '&':
			return operator{opAnd, 1}
		case c == '|' && d != '|':
			return operator{opOr, 1}
		case c == '^':
			return operator{opXor, 1}
		}
	case levelRel:
		switch c {
		case '=':
			if d == '=' {
				return operator{opBoth, 2}
			}
		case '<':
			switch d {
			case '>':
				return operator{opNe, 2}
			case '=':
				return operator{opLe, 2}
			default:
				return operator{opLt, 1}
			}
		case '>':
			switch d {
			case '<':
				// >< belongs to the boolean level.
			case '=':
				return operator{opGe, 2}
			default:
				return operator{opGt, 1}
			}
		}
	case levelBool:
		switch {
		case c == '&' && d == '&':
			return operator{opLand, 2}
		case c == '|' && d == '|':
			return operator{opLor, 2}
		case c == '>' && d == '<':
			return operator{opLxor, 2}
		}
	default:
		panic("intexpr: binop at invalid level")
	}
	return operator{}
}

// apply computes a binary operation. col is the position of the operator.
func (p *parser) apply(op opKind, l, r uint64, col int) uint64 {
	switch op {
	case opShl:
		if r >= 64 {
			return 0
		}
		return l << r
	case opShr:
		if r >= 64 {
			return 0
		}
		return l >> r
	case opMul:
		return l * r
	case opDiv:
		if r == 0 {
			p.fail(&DivideError{Col: col, Op: "/"})
			return 0
		}
		return l / r
	case opMod:
		if r == 0 {
			p.fail(&DivideError{Col: col, Op: `\`})
			return 0
		}
		return l % r
	case opAdd:
		return l + r
	case opSub:
		return l - r
	case opAnd:
		return l & r
	case opOr:
		return l | r
	case opXor:
		return l ^ r
	case opBoth, opLand:
		return truth(l != 0 && r != 0)
	case opNe:
		return truth(l != r)
	case opLe:
		return truth(l <= r)
	case opLt:
		return truth(l < r)
	case opGe:
		return truth(l >= r)
	case opGt:
		return truth(l > r)
	case opLor:
		return truth(l != 0 || r != 0)
	case opLxor:
		return truth((l != 0) != (r != 0))
	default:
		panic("intexpr: invalid operator")
	}
}

// truth converts a bool to 0 or 1.
func truth(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
