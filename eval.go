package intexpr

// Eval evaluates an expression. If the input is not a complete expression or
// contains a division by zero, the result is 0 and the error is an
// InputError describing the first problem.
//
// Eval is safe to call concurrently, provided that the hook is safe for
// concurrent use. It does not modify the register bank.
func Eval(src string, opts ...Option) (uint64, error) {
	v, err := eval(src, opts)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Evaluate evaluates an expression using a register bank and hook, either of
// which may be nil. The second result reports whether the whole input was a
// valid expression. When it is false, the value is whatever was computed
// before evaluation stopped and should not be relied upon.
func Evaluate(src string, regs *Registers, hook Hook) (uint64, bool) {
	v, err := eval(src, []Option{WithRegisters(regs), WithHook(hook)})
	return v, err == nil
}

// Verify reports whether src is a valid expression without reading any
// registers or calling any hook.
func Verify(src string) bool {
	return Check(src) == nil
}

// Check is like Verify, but it returns an error describing why src is not
// valid.
func Check(src string) error {
	_, err := eval(src, []Option{Inactive()})
	return err
}

func eval(src string, opts []Option) (uint64, error) {
	o := evalopts{max: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.option(&o)
	}
	if o.hook == nil {
		o.hook = Identity
	}
	p := parser{
		cursor: cursor{src: src},
		regs:   o.regs,
		hook:   o.hook,
		max:    o.max,
	}
	v := p.sequence(!o.inactive)
	if p.err != nil {
		return v, p.err
	}
	if p.pos != len(p.src) {
		return v, &ResidualError{Col: p.col(), Rest: p.rest()}
	}
	return v, nil
}
