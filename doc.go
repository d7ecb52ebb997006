// Package intexpr evaluates integer expressions over 64-bit unsigned values.
//
// Expressions use C-like operators, loosest binding first:
//
// 	,			sequence; the value is that of the last expression
// 	c ? a ! b		conditional; chains as c1 ? a ! c2 ? b ! d
// 	&& || ><		logical and, or, exclusive or
// 	== <> <= < >= >		relations; == is a logical and, not equality
// 	& | ^			bitwise and, or, exclusive or
// 	+ -			wrapping addition and subtraction
// 	* / \			multiplication, division, modulo
// 	<< >>			shifts; shifting by 64 or more gives 0
// 	? ! ~ - +		prefix truth, not, complement, negation, plus
//
// The prefix operators < > & | ^ * / \ @ = are extension operators, defined by
// a Hook. With the default hook they are the same as unary +.
//
// Operands are numbers, written in decimal, octal with a leading 0, or hex
// with a leading 0x; registers, written %0 through %9 and %A through %Z; and
// parenthesized expressions. Register values come from a Registers bank
// supplied by the caller. Standard creates a bank with %B, %W, and %T holding
// the bits per byte, the bytes per value, and the current time in
// nanoseconds.
//
// Unrecognized characters where an operand is expected are skipped and count
// as 0. An expression is invalid only if evaluation stops before the end of
// the input, an operand or close bracket is missing at the end of the input,
// or it divides by zero.
//
// The branch of a conditional which is not selected is parsed but not
// evaluated: its registers read as 0 and its extension operators do not call
// the hook. Verify parses an entire expression this way.
package intexpr
