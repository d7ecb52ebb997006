package intexpr_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/zephyrtronium/intexpr"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    uint64
	}{
		{"num", "1", 1},
		{"hex", "0x10", 16},
		{"octal", "010", 8},
		{"spaces", " 1 + 2 ", 3},
		{"precedence", "1+2*3", 7},
		{"parens", "(1+2)*3", 9},
		{"nested-parens", "((2))*((3))", 6},
		{"shl", "1<<3", 8},
		{"shl-width", "1<<64", 0},
		{"shl-top", "1<<63", 1 << 63},
		{"shr", "256>>4", 16},
		{"shr-width", "1>>64", 0},
		{"shift-binds-tighter", "2*1<<3", 16},
		{"shift-unary-operand", "-1>>63", 1},
		{"div", "7/2", 3},
		{"mod", `7\2`, 1},
		{"mul-left", "12/2*3", 18},
		{"sub-left", "10-3-2", 5},
		{"sub-wraps", "0-1", math.MaxUint64},
		{"add-wraps", "18446744073709551615+2", 1},
		{"neg", "-1", math.MaxUint64},
		{"neg-neg", "--5", 5},
		{"not", "!0", 1},
		{"not-nonzero", "!5", 0},
		{"truth", "?5", 1},
		{"truth-zero", "?0", 0},
		{"complement", "~0", math.MaxUint64},
		{"plus", "+5", 5},
		{"prefix-chain", "~!?-+1", math.MaxUint64},
		{"and", "6&3", 2},
		{"or", "6|3", 7},
		{"xor", "6^3", 5},
		{"bit-looser-than-add", "1+2&3", 3},
		{"bit-rhs", "6&3+1", 4},
		{"both", "2==3", 1},
		{"both-zero", "2==0", 0},
		{"ne", "2<>3", 1},
		{"ne-equal", "2<>2", 0},
		{"le", "2<=2", 1},
		{"lt", "2<3", 1},
		{"lt-false", "3<2", 0},
		{"ge", "3>=4", 0},
		{"gt", "4>3", 1},
		{"rel-looser-than-add", "1+1<3", 1},
		{"lt-chain", "1 < 2 < 3", 1},
		{"gt-chain", "3 > 2 > 1", 0},
		{"land", "2&&3", 1},
		{"land-zero", "2&&0", 0},
		{"lor", "0||7", 1},
		{"lor-zero", "0||0", 0},
		{"lxor", "1><0", 1},
		{"lxor-both", "5><3", 0},
		{"bool-looser-than-bit", "1&&2|4", 1},
		{"lxor-after-rel", "1<2><0", 1},
		{"cond-true", "1?2!3", 2},
		{"cond-false", "0?2!3", 3},
		{"cond-chain", "0?1!0?2!3", 3},
		{"cond-chain-first", "1?1!0?2!3", 1},
		{"cond-chain-second", "0?1!1?2!3", 2},
		{"cond-no-else-true", "3?5", 5},
		{"cond-no-else-false", "0?5", 0},
		{"cond-in-parens", "(0?1!2)+1", 3},
		{"cond-expr", "2>1?10!20", 10},
		{"sequence", "1,2,3", 3},
		{"sequence-cond", "0?1!2,3?4!5", 4},
		{"sequence-in-parens", "(1,2)*3", 6},
		{"skip-unknown", "$", 0},
		{"skip-unknown-operand", "1+$", 1},
		{"skip-close", ")", 0},
		{"skip-rune", "π", 0},
		{"percent-junk", "%$+1", 1},
		{"extension-default", "*5", 5},
		{"extension-all", `<>&|^*/\@=5`, 5},
		{"ext-after-lt", "1<*3", 1},
		{"big", "18446744073709551615", math.MaxUint64},
		{"saturate", "99999999999999999999", math.MaxUint64},
		{"register-nil", "%0+%Z", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := intexpr.Eval(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: want %d, got %d", c.src, c.r, r)
			}
			v, ok := intexpr.Evaluate(c.src, nil, nil)
			if !ok || v != r {
				t.Errorf("%q: Evaluate gave %d, %t; Eval gave %d", c.src, v, ok, r)
			}
			if !intexpr.Verify(c.src) {
				t.Errorf("%q: Verify failed", c.src)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	var (
		residual *intexpr.ResidualError
		empty    *intexpr.EmptyExpressionError
		bracket  *intexpr.BracketError
		divide   *intexpr.DivideError
	)
	cases := []struct {
		name string
		src  string
		// err is a pointer to the pointer type of the expected error.
		err interface{}
		pos int
	}{
		{"empty", "", &empty, 1},
		{"spaces", "   ", &empty, 4},
		{"dangling-add", "1+", &empty, 3},
		{"dangling-mul", "1 * ", &empty, 5},
		{"dangling-prefix", "-", &empty, 2},
		{"dangling-shift", "1<<", &empty, 4},
		{"dangling-cond", "1?", &empty, 3},
		{"dangling-else", "1?2!", &empty, 5},
		{"dangling-comma", "1,", &empty, 3},
		{"dangling-percent", "%", &empty, 2},
		{"unclosed", "(1", &bracket, 1},
		{"unclosed-inner", "1 + ( 2", &bracket, 5},
		{"unclosed-outer", "((1)", &bracket, 1},
		{"wrong-close", "(1]", &residual, 3},
		{"juxtaposed", "1 2", &residual, 3},
		{"octal-digit", "09", &residual, 2},
		{"close", "1)", &residual, 2},
		{"single-eq", "1+2 =3", &residual, 5},
		{"bang", "1!2", &residual, 2},
		{"div-zero", "1/0", &divide, 2},
		{"mod-zero", `1\0`, &divide, 2},
		{"div-zero-expr", "4/(2-2)", &divide, 2},
		{"div-zero-untaken", "0?1/0!2", &divide, 4},
		{"div-zero-then-junk", "1/0 2", &divide, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := intexpr.Eval(c.src)
			if err == nil {
				t.Fatalf("%q gave %d with no error", c.src, r)
			}
			if r != 0 {
				t.Errorf("%q gave %d with error", c.src, r)
			}
			if !errors.As(err, c.err) {
				t.Fatalf("%q: wrong error type %T: %v", c.src, err, err)
			}
			var ie intexpr.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: error %T is not an InputError", c.src, err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
			if _, ok := intexpr.Evaluate(c.src, nil, nil); ok {
				t.Errorf("%q: Evaluate succeeded", c.src)
			}
			if intexpr.Verify(c.src) {
				t.Errorf("%q: Verify succeeded", c.src)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"", "1: no expression"},
		{"1+", "3: no expression at end"},
		{"(1", "1: open bracket ( with no close bracket"},
		{"1 2", `3: unexpected "2"`},
		{"1/0", "2: division by zero"},
		{`1\0`, "2: modulo by zero"},
	}
	for _, c := range cases {
		_, err := intexpr.Eval(c.src)
		if err == nil {
			t.Errorf("%q: no error", c.src)
			continue
		}
		if err.Error() != c.msg {
			t.Errorf("%q: want message %q, got %q", c.src, c.msg, err.Error())
		}
	}
}

func TestEvaluatePartial(t *testing.T) {
	// The value of a failed evaluation is what was computed before it stopped.
	v, ok := intexpr.Evaluate("1+2 3", nil, nil)
	if ok {
		t.Error("evaluation succeeded")
	}
	if v != 3 {
		t.Errorf("want partial value 3, got %d", v)
	}
}

func TestRegisters(t *testing.T) {
	var regs intexpr.Registers
	regs[0] = 5
	if err := regs.Set('a', 7); err != nil {
		t.Fatal(err)
	}
	if err := regs.Set('9', 11); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		src string
		r   uint64
	}{
		{"%0", 5},
		{"%A", 7},
		{"%a", 7},
		{"%9", 11},
		{"%1", 0},
		{"%0*%a+%9", 46},
		{"%$", 0},
		{"1?%0!%a", 5},
		{"0?%0!%a", 7},
	}
	for _, c := range cases {
		r, ok := intexpr.Evaluate(c.src, &regs, nil)
		if !ok {
			t.Errorf("%q failed", c.src)
		}
		if r != c.r {
			t.Errorf("%q: want %d, got %d", c.src, c.r, r)
		}
	}
	if regs[0] != 5 || regs[10] != 7 || regs[9] != 11 {
		t.Errorf("registers modified: %v", regs)
	}
}

func TestInactive(t *testing.T) {
	regs := intexpr.Registers{5}
	r, err := intexpr.Eval("%0", intexpr.WithRegisters(&regs), intexpr.Inactive())
	if err != nil {
		t.Fatal(err)
	}
	if r != 0 {
		t.Errorf("inactive register read gave %d", r)
	}
	r, err = intexpr.Eval("2+3", intexpr.Inactive())
	if err != nil {
		t.Fatal(err)
	}
	if r != 5 {
		t.Errorf("inactive literals gave %d", r)
	}
}

func TestStandard(t *testing.T) {
	now := time.Unix(3, 45)
	regs := intexpr.Standard(now, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	cases := []struct {
		src string
		r   uint64
	}{
		{"%B", 8},
		{"%W", 8},
		{"%T", 3000000045},
		{"%b*%w", 64},
		{"%0", 1},
		{"%9", 10},
		{"%0+%1+%2+%3+%4+%5+%6+%7+%8+%9", 55},
		{"%A", 0},
		{"1<<(%B*%W)", 0},
	}
	for _, c := range cases {
		r, ok := intexpr.Evaluate(c.src, regs, nil)
		if !ok || r != c.r {
			t.Errorf("%q: want %d, got %d, %t", c.src, c.r, r, ok)
		}
	}
}

func TestBuiltinsOverride(t *testing.T) {
	var regs intexpr.Registers
	regs.Set('B', 99)
	regs.Set('T', 99)
	regs.Set('Q', 99)
	regs.Builtins(time.Unix(0, 7))
	for _, c := range []struct {
		name byte
		want uint64
	}{{'B', 8}, {'T', 7}, {'Q', 99}} {
		v, ok := regs.Get(c.name)
		if !ok || v != c.want {
			t.Errorf("%%%c: want %d, got %d, %t", c.name, c.want, v, ok)
		}
	}
}

func TestRegisterNames(t *testing.T) {
	for k := 0; k < intexpr.NumRegisters; k++ {
		c := intexpr.RegisterName(k)
		j, ok := intexpr.RegisterIndex(c)
		if !ok || j != k {
			t.Errorf("slot %d: name %q maps to %d, %t", k, c, j, ok)
		}
	}
	for _, c := range []byte{'$', '%', '@', '[', '`', '{', '/', ':', 0, 0xff} {
		if _, ok := intexpr.RegisterIndex(c); ok {
			t.Errorf("%q is a register", c)
		}
		var regs intexpr.Registers
		if err := regs.Set(c, 1); err == nil {
			t.Errorf("setting %q succeeded", c)
		}
		if _, ok := regs.Get(c); ok {
			t.Errorf("getting %q succeeded", c)
		}
	}
	var nilregs *intexpr.Registers
	if v, ok := nilregs.Get('A'); !ok || v != 0 {
		t.Errorf("nil bank read gave %d, %t", v, ok)
	}
}

func TestHook(t *testing.T) {
	double := intexpr.HookFunc(func(op byte, x uint64) uint64 { return 2 * x })
	cases := []struct {
		src string
		r   uint64
	}{
		{"*5", 10},
		{"**5", 20},
		{"=5+1", 11},
		{"@(2+3)", 10},
		{"-*5", math.MaxUint64 - 9},
		{"1<*3", 1},
		{"0?*5!3", 3},
	}
	for _, c := range cases {
		r, ok := intexpr.Evaluate(c.src, nil, double)
		if !ok || r != c.r {
			t.Errorf("%q: want %d, got %d, %t", c.src, c.r, r, ok)
		}
	}
	if r, ok := intexpr.Evaluate("*5", nil, nil); !ok || r != 5 {
		t.Errorf("default hook: want 5, got %d, %t", r, ok)
	}
}

func TestHookCalls(t *testing.T) {
	type call struct {
		op byte
		x  uint64
	}
	var calls []call
	rec := intexpr.HookFunc(func(op byte, x uint64) uint64 {
		calls = append(calls, call{op, x})
		return x + 1
	})
	cases := []struct {
		src   string
		calls []call
	}{
		{"*5", []call{{'*', 5}}},
		{"*/5", []call{{'/', 5}, {'*', 6}}},
		{"0?*5!/6", []call{{'/', 6}}},
		{"1?*5!/6", []call{{'*', 5}}},
		{"0?*5", nil},
		{"@1,=2", []call{{'@', 1}, {'=', 2}}},
		{"0?(1?*1!*2)!3", nil},
	}
	for _, c := range cases {
		calls = nil
		if _, ok := intexpr.Evaluate(c.src, nil, rec); !ok {
			t.Errorf("%q failed", c.src)
		}
		if len(calls) != len(c.calls) {
			t.Errorf("%q: want calls %v, got %v", c.src, c.calls, calls)
			continue
		}
		for i := range calls {
			if calls[i] != c.calls[i] {
				t.Errorf("%q: want calls %v, got %v", c.src, c.calls, calls)
				break
			}
		}
	}
}

func TestVerifyNoEffects(t *testing.T) {
	if !intexpr.Verify("*%0+@%T") {
		t.Error("Verify failed")
	}
	if err := intexpr.Check("1/0"); err == nil {
		t.Error("Check(1/0) succeeded")
	}
}

func TestIdempotent(t *testing.T) {
	regs := intexpr.Registers{3, 4}
	hook := intexpr.MathHook()
	for _, src := range []string{"%0*%1+*%0", "0?1!0?2!3", "1+", `@%1\3,/%0`} {
		a, aok := intexpr.Evaluate(src, &regs, hook)
		b, bok := intexpr.Evaluate(src, &regs, hook)
		if a != b || aok != bok {
			t.Errorf("%q: %d, %t then %d, %t", src, a, aok, b, bok)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}
	var depth *intexpr.DepthError
	if _, err := intexpr.Eval(nest(50), intexpr.MaxDepth(10)); !errors.As(err, &depth) {
		t.Errorf("want *DepthError, got %v", err)
	} else if depth.Limit != 10 {
		t.Errorf("want limit 10, got %d", depth.Limit)
	}
	if r, err := intexpr.Eval(nest(50), intexpr.MaxDepth(0)); err != nil || r != 1 {
		t.Errorf("unlimited depth: got %d, %v", r, err)
	}
	if r, err := intexpr.Eval(nest(9), intexpr.MaxDepth(10)); err != nil || r != 1 {
		t.Errorf("depth within limit: got %d, %v", r, err)
	}
	if _, err := intexpr.Eval(nest(10), intexpr.MaxDepth(10)); !errors.As(err, &depth) {
		t.Errorf("depth over limit: got %v", err)
	}
	if _, err := intexpr.Eval(strings.Repeat("-", intexpr.DefaultMaxDepth) + "1"); !errors.As(err, &depth) {
		t.Errorf("default limit: got %v", err)
	}
	if r, err := intexpr.Eval(strings.Repeat("-", intexpr.DefaultMaxDepth-1) + "1"); err != nil || r != math.MaxUint64 {
		t.Errorf("default limit: got %d, %v", r, err)
	}
	if intexpr.Verify(strings.Repeat("?", 2*intexpr.DefaultMaxDepth)) {
		t.Error("Verify of deep input succeeded")
	}
}

func TestMaxDepthConditional(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"else-chain", strings.Repeat("0?1!", 50) + "2"},
		{"then-chain", strings.Repeat("1?", 50) + "2"},
		{"mixed", strings.Repeat("1?0?1!", 25) + "2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var depth *intexpr.DepthError
			r, err := intexpr.Eval(c.src, intexpr.MaxDepth(10))
			if !errors.As(err, &depth) {
				t.Fatalf("want *DepthError, got %d, %v", r, err)
			}
			if depth.Limit != 10 {
				t.Errorf("want limit 10, got %d", depth.Limit)
			}
			if intexpr.Verify(c.src + strings.Repeat(c.src, 2*intexpr.DefaultMaxDepth/50)) {
				t.Error("Verify of long chain succeeded")
			}
		})
	}
	if r, err := intexpr.Eval(strings.Repeat("0?1!", 5)+"2", intexpr.MaxDepth(10)); err != nil || r != 2 {
		t.Errorf("else-chain within limit: got %d, %v", r, err)
	}
	if r, err := intexpr.Eval(strings.Repeat("1?", 5)+"2", intexpr.MaxDepth(10)); err != nil || r != 2 {
		t.Errorf("then-chain within limit: got %d, %v", r, err)
	}
	if r, err := intexpr.Eval(strings.Repeat("1?", 50)+"2", intexpr.MaxDepth(0)); err != nil || r != 2 {
		t.Errorf("unlimited chain: got %d, %v", r, err)
	}
}

// == is a logical and of its operands, not a comparison for equality.
func TestDoubleEqualsIsLogicalAnd(t *testing.T) {
	cases := []struct {
		src string
		r   uint64
	}{
		{"3==3", 1},
		{"3==4", 1},
		{"0==0", 0},
		{"0==4", 0},
		{"1==1==0", 0},
	}
	for _, c := range cases {
		r, err := intexpr.Eval(c.src)
		if err != nil || r != c.r {
			t.Errorf("%q: want %d, got %d, %v", c.src, c.r, r, err)
		}
	}
}
