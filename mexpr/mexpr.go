// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mexpr compiles and evaluates symbolic math expressions made of
// numbers, named variables, math functions and arithmetic operators
package mexpr

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/cpmech/gosl/chk"
)

// operation codes
const (
	opNum = iota // numerical constant
	opVar        // user-defined variable
	opNeg        // unary minus
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opCos
	opSin
	opTan
	opCot
	opAbs
	opSgn
	opSqrt
	opLog
	opExp
	opAsin
	opAcos
	opAtan
	opAcot
	opSinh
	opCosh
	opTanh
	opCoth
	opLog10
	opStep
)

// function names in parse order
var funcNames = []string{"cos", "sin", "tan", "cot", "abs", "sgn",
	"sqrt", "log", "exp", "asin", "acos", "atan",
	"acot", "sinh", "cosh", "tanh", "coth", "log10", "step"}

// term is one entry of the compiled postfix list
type term struct {
	opcode int
	ivar   int     // variable index when opcode == opVar
	fvalue float64 // constant value when opcode == opNum
}

// Expr holds a compiled expression ready for evaluation. An Expr is compiled
// once at load time and may be evaluated many times with no side effects.
type Expr struct {
	terms []term
}

// VarIndexer returns the index of a named variable, or a negative value if
// the name is unknown
type VarIndexer func(name string) int

// VarValuer returns the current value of the variable with given index
type VarValuer func(index int) float64

// parser holds the tokenizer state
type parser struct {
	src      string
	pos      int
	varIndex VarIndexer
	terms    []term
}

// Parse compiles the infix expression s into postfix form. Variable names
// are resolved through varIndex at compile time.
func Parse(s string, varIndex VarIndexer) (expr *Expr, err error) {
	p := &parser{src: s, varIndex: varIndex}
	err = p.expression()
	if err != nil {
		return
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, chk.Err("cannot parse expression: unexpected %q at position %d", p.src[p.pos:], p.pos)
	}
	return &Expr{terms: p.terms}, nil
}

// Eval evaluates the compiled expression against the variable values
// supplied by vars
func (o *Expr) Eval(vars VarValuer) float64 {
	var stack [32]float64
	sp := 0
	for _, t := range o.terms {
		switch t.opcode {
		case opNum:
			stack[sp] = t.fvalue
			sp++
		case opVar:
			stack[sp] = vars(t.ivar)
			sp++
		case opNeg:
			stack[sp-1] = -stack[sp-1]
		case opAdd:
			stack[sp-2] += stack[sp-1]
			sp--
		case opSub:
			stack[sp-2] -= stack[sp-1]
			sp--
		case opMul:
			stack[sp-2] *= stack[sp-1]
			sp--
		case opDiv:
			stack[sp-2] /= stack[sp-1]
			sp--
		case opPow:
			stack[sp-2] = math.Pow(stack[sp-2], stack[sp-1])
			sp--
		default:
			stack[sp-1] = call(t.opcode, stack[sp-1])
		}
	}
	return stack[0]
}

// call applies a math function
func call(opcode int, x float64) float64 {
	switch opcode {
	case opCos:
		return math.Cos(x)
	case opSin:
		return math.Sin(x)
	case opTan:
		return math.Tan(x)
	case opCot:
		return 1.0 / math.Tan(x)
	case opAbs:
		return math.Abs(x)
	case opSgn:
		if x < 0 {
			return -1.0
		} else if x > 0 {
			return 1.0
		}
		return 0.0
	case opSqrt:
		return math.Sqrt(x)
	case opLog:
		return math.Log(x)
	case opExp:
		return math.Exp(x)
	case opAsin:
		return math.Asin(x)
	case opAcos:
		return math.Acos(x)
	case opAtan:
		return math.Atan(x)
	case opAcot:
		return math.Atan(1.0 / x)
	case opSinh:
		return math.Sinh(x)
	case opCosh:
		return math.Cosh(x)
	case opTanh:
		return math.Tanh(x)
	case opCoth:
		return 1.0 / math.Tanh(x)
	case opLog10:
		return math.Log10(x)
	case opStep:
		if x <= 0 {
			return 0.0
		}
		return 1.0
	}
	return 0.0
}

// expression parses:  term { (+|-) term }
func (p *parser) expression() (err error) {
	err = p.mulTerm()
	if err != nil {
		return
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return
		}
		c := p.src[p.pos]
		if c != '+' && c != '-' {
			return
		}
		p.pos++
		err = p.mulTerm()
		if err != nil {
			return
		}
		if c == '+' {
			p.emit(term{opcode: opAdd})
		} else {
			p.emit(term{opcode: opSub})
		}
	}
}

// mulTerm parses:  powTerm { (*|/) powTerm }
func (p *parser) mulTerm() (err error) {
	err = p.powTerm()
	if err != nil {
		return
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return
		}
		c := p.src[p.pos]
		if c != '*' && c != '/' {
			return
		}
		p.pos++
		err = p.powTerm()
		if err != nil {
			return
		}
		if c == '*' {
			p.emit(term{opcode: opMul})
		} else {
			p.emit(term{opcode: opDiv})
		}
	}
}

// powTerm parses:  factor { ^ factor }
func (p *parser) powTerm() (err error) {
	err = p.factor()
	if err != nil {
		return
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '^' {
			return
		}
		p.pos++
		err = p.factor()
		if err != nil {
			return
		}
		p.emit(term{opcode: opPow})
	}
}

// factor parses numbers, variables, function calls, parenthesised
// sub-expressions and unary minus
func (p *parser) factor() (err error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return chk.Err("cannot parse expression: unexpected end of input")
	}
	c := p.src[p.pos]

	// unary minus
	if c == '-' {
		p.pos++
		err = p.factor()
		if err != nil {
			return
		}
		p.emit(term{opcode: opNeg})
		return
	}

	// parenthesised sub-expression
	if c == '(' {
		p.pos++
		err = p.expression()
		if err != nil {
			return
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return chk.Err("cannot parse expression: missing closing parenthesis")
		}
		p.pos++
		return
	}

	// number
	if unicode.IsDigit(rune(c)) || c == '.' {
		start := p.pos
		for p.pos < len(p.src) {
			c = p.src[p.pos]
			if unicode.IsDigit(rune(c)) || c == '.' || c == 'e' || c == 'E' {
				p.pos++
				continue
			}
			if (c == '+' || c == '-') && p.pos > start && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E') {
				p.pos++
				continue
			}
			break
		}
		v, e := strconv.ParseFloat(p.src[start:p.pos], 64)
		if e != nil {
			return chk.Err("cannot parse number %q", p.src[start:p.pos])
		}
		p.emit(term{opcode: opNum, fvalue: v})
		return
	}

	// name: function or variable
	if unicode.IsLetter(rune(c)) || c == '_' {
		start := p.pos
		for p.pos < len(p.src) {
			c = p.src[p.pos]
			if unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) || c == '_' {
				p.pos++
				continue
			}
			break
		}
		name := p.src[start:p.pos]

		// function call
		lower := strings.ToLower(name)
		for i, fname := range funcNames {
			if lower == fname {
				p.skipSpace()
				if p.pos >= len(p.src) || p.src[p.pos] != '(' {
					return chk.Err("function %q must be followed by '('", name)
				}
				p.pos++
				err = p.expression()
				if err != nil {
					return
				}
				p.skipSpace()
				if p.pos >= len(p.src) || p.src[p.pos] != ')' {
					return chk.Err("cannot parse expression: missing closing parenthesis")
				}
				p.pos++
				p.emit(term{opcode: opCos + i})
				return
			}
		}

		// variable
		iv := p.varIndex(name)
		if iv < 0 {
			return chk.Err("unknown variable %q", name)
		}
		p.emit(term{opcode: opVar, ivar: iv})
		return
	}

	return chk.Err("cannot parse expression: unexpected %q at position %d", string(c), p.pos)
}

// emit appends one postfix term
func (p *parser) emit(t term) {
	p.terms = append(p.terms, t)
}

// skipSpace advances over blanks
func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
