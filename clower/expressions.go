package clower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
)

// say builds the printf call for an output statement. Every operand
// contributes a format specifier chosen from its static type (spec §4.4's
// printf/scanf format table), grounded on transpile_print in
// original_source/transpiler.py.
func (c *clower) say(n *ast.Say) {
	var operands []ast.Expr
	if concat, ok := n.Value.(*ast.Concat); ok {
		operands = concat.Operands
	} else {
		operands = []ast.Expr{n.Value}
	}

	var format strings.Builder
	var args []string

	for _, op := range operands {
		switch e := op.(type) {
		case *ast.StringLit:
			format.WriteString(escapeForC(e.Value))
		case *ast.IntLit:
			format.WriteString("%d")
			args = append(args, strconv.FormatInt(e.Value, 10))
		case *ast.DecimalLit:
			format.WriteString("%f")
			args = append(args, strconv.FormatFloat(e.Value, 'f', -1, 64))
		case *ast.CharLit:
			format.WriteString("%c")
			args = append(args, fmt.Sprintf("'%c'", e.Value))
		default:
			format.WriteString(c.formatSpecFor(op))
			args = append(args, c.expr(op))
		}
	}

	argsStr := ""
	if len(args) > 0 {
		argsStr = ", " + strings.Join(args, ", ")
	}
	c.emit(fmt.Sprintf(`printf("%s\n"%s);`, format.String(), argsStr))
}

// formatSpecFor picks a printf conversion for a non-literal operand based on
// its statically tracked type, defaulting to %d (original_source's own
// fallback for untyped expressions).
func (c *clower) formatSpecFor(e ast.Expr) string {
	if ref, ok := e.(*ast.VarRef); ok {
		if ty, ok := c.varTypes[ref.Name]; ok && ty != nil {
			switch ty.Kind {
			case ast.TString:
				return "%s"
			case ast.TDecimal:
				return "%f"
			case ast.TChar:
				return "%c"
			}
		}
	}
	return "%d"
}

func escapeForC(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// expr lowers an expression to a C source fragment.
func (c *clower) expr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *ast.DecimalLit:
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	case *ast.StringLit:
		return `"` + escapeForC(n.Value) + `"`
	case *ast.CharLit:
		return charLit(n.Value)
	case *ast.BoolLit:
		if n.Value {
			return "1"
		}
		return "0"
	case *ast.NullLit:
		return "NULL"
	case *ast.VarRef:
		return n.Name
	case *ast.BinaryOp:
		return c.binaryOp(n)
	case *ast.UnaryOp:
		return c.unaryOp(n)
	case *ast.ArrayIndex:
		return c.arrayIndexExpr(n)
	case *ast.FieldAccess:
		obj := c.expr(n.Struct)
		if c.isPointerExpr(n.Struct) {
			return fmt.Sprintf("%s->%s", obj, n.Field)
		}
		return fmt.Sprintf("%s.%s", obj, n.Field)
	case *ast.Call:
		return c.callExpr(n)
	case *ast.RawExpr:
		return n.Text
	case *ast.RandomNumber:
		c.includes["stdlib"] = true
		c.includes["time"] = true
		lo, hi := c.expr(n.Low), c.expr(n.High)
		return fmt.Sprintf("(rand() %% (%s - %s + 1) + %s)", hi, lo, lo)
	case *ast.WindowShouldClose:
		return "WindowShouldClose()"
	case *ast.MouseX:
		return "GetMouseX()"
	case *ast.MouseY:
		return "GetMouseY()"
	case *ast.MousePressed:
		return "IsMouseButtonPressed(MOUSE_LEFT_BUTTON)"
	case *ast.FileHasLine:
		return fmt.Sprintf("!feof(%s)", c.expr(n.Handle))
	case *ast.Concat:
		// Concat only appears directly under Say; elsewhere treat the first
		// operand as the value (defensive fallback, not reachable from the
		// grammar today).
		if len(n.Operands) > 0 {
			return c.expr(n.Operands[0])
		}
		return `""`
	default:
		return "0"
	}
}

func charLit(r rune) string {
	switch r {
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\'':
		return `'\''`
	case '\\':
		return `'\\'`
	default:
		return fmt.Sprintf("'%c'", r)
	}
}

func (c *clower) binaryOp(n *ast.BinaryOp) string {
	left := c.expr(n.Left)

	if n.Op == ast.BBetween {
		lo, hi := c.expr(n.Right), c.expr(n.Third)
		return fmt.Sprintf("(%s >= %s && %s <= %s)", left, lo, left, hi)
	}
	if n.Op == ast.BContains {
		c.includes["string"] = true
		right := c.expr(n.Right)
		return fmt.Sprintf("(strstr(%s, %s) != NULL)", left, right)
	}

	right := c.expr(n.Right)
	sym, ok := binOpSymbols[n.Op]
	if !ok {
		return fmt.Sprintf("(%s)", left)
	}

	// `to the power of` has no native C operator; call the runtime helper.
	if n.Op == ast.BPow {
		c.includes["math"] = true
		return fmt.Sprintf("pow(%s, %s)", left, right)
	}

	return fmt.Sprintf("(%s %s %s)", left, sym, right)
}

var binOpSymbols = map[ast.BinaryKind]string{
	ast.BAdd: "+", ast.BSub: "-", ast.BMul: "*", ast.BDiv: "/", ast.BMod: "%",
	ast.BEq: "==", ast.BNe: "!=", ast.BGt: ">", ast.BLt: "<", ast.BGe: ">=", ast.BLe: "<=",
	ast.BAnd: "&&", ast.BOr: "||",
}

func (c *clower) unaryOp(n *ast.UnaryOp) string {
	operand := c.expr(n.Operand)
	switch n.Op {
	case ast.UNeg:
		return fmt.Sprintf("(-%s)", operand)
	case ast.UNot:
		return fmt.Sprintf("(!%s)", operand)
	case ast.USqrt:
		c.includes["math"] = true
		return fmt.Sprintf("sqrt(%s)", operand)
	case ast.UAbs:
		return c.absOrLength(n)
	case ast.UAddressOf:
		return fmt.Sprintf("(&%s)", operand)
	case ast.UDeref:
		return fmt.Sprintf("(*%s)", operand)
	default:
		return operand
	}
}

// absOrLength disambiguates `the absolute value of X` from `the length of X`
// — both lowered through UAbs by the parser (DESIGN.md, decision 4) — by
// checking whether the operand is a known array.
func (c *clower) absOrLength(n *ast.UnaryOp) string {
	if ref, ok := n.Operand.(*ast.VarRef); ok {
		if size, ok := c.arrSize[ref.Name]; ok {
			return strconv.Itoa(size)
		}
		if ty, ok := c.varTypes[ref.Name]; ok && ty != nil && (ty.Kind == ast.TOpenArray || ty.Kind == ast.TFixedArray) {
			arr := c.expr(n.Operand)
			return fmt.Sprintf("(sizeof(%s)/sizeof(%s[0]))", arr, arr)
		}
	}
	c.includes["stdlib"] = true
	return fmt.Sprintf("abs(%s)", c.expr(n.Operand))
}

func (c *clower) arrayIndexExpr(n *ast.ArrayIndex) string {
	arr := c.expr(n.Array)
	if n.First {
		return fmt.Sprintf("%s[0]", arr)
	}
	if n.Last {
		if ref, ok := n.Array.(*ast.VarRef); ok {
			if size, ok := c.arrSize[ref.Name]; ok {
				return fmt.Sprintf("%s[%d]", arr, size-1)
			}
		}
		return fmt.Sprintf("%s[sizeof(%s)/sizeof(%s[0]) - 1]", arr, arr, arr)
	}
	return fmt.Sprintf("%s[%s]", arr, c.expr(n.Index))
}

func (c *clower) callExpr(n *ast.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.expr(a)
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}
