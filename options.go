package intexpr

// Option is an option for evaluation.
type Option interface {
	option(*evalopts)
}

type evalopts struct {
	regs     *Registers
	hook     Hook
	max      int
	inactive bool
}

type (
	regsopt     struct{ r *Registers }
	hookopt     struct{ h Hook }
	depthopt    int
	inactiveopt struct{}
)

// WithRegisters sets the register bank that expressions read. The bank is
// never modified. Without this option, or with a nil bank, every register
// reads as 0.
func WithRegisters(r *Registers) Option {
	return regsopt{r}
}

func (o regsopt) option(e *evalopts) {
	e.regs = o.r
}

// WithHook sets the hook which defines the extension operators. A nil hook
// selects Identity.
func WithHook(h Hook) Option {
	return hookopt{h}
}

func (o hookopt) option(e *evalopts) {
	e.hook = o.h
}

// DefaultMaxDepth is the default limit on the nesting depth of an expression.
const DefaultMaxDepth = 10000

// MaxDepth sets the limit on the nesting depth of an expression. Each operand
// inside parentheses or after a prefix operator adds one level, as does each
// '?' in a chain of conditionals. If n is zero or negative, there is no limit,
// and deeply nested input can exhaust the stack.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(e *evalopts) {
	e.max = int(o)
	if e.max < 0 {
		e.max = 0
	}
}

// Inactive evaluates with evaluation turned off: the expression is fully
// parsed, but registers read as 0 and the hook is never called. Literals and
// arithmetic are still computed, so division by zero is still reported.
func Inactive() Option {
	return inactiveopt{}
}

func (inactiveopt) option(e *evalopts) {
	e.inactive = true
}
