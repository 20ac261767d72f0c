// Package printer renders a .dims abstract syntax tree back into canonical
// source text.
//
// The output uses 4 space indentation and one statement per line. Every binary
// operator that is itself the operand of another operator is parenthesised, so
// printing never depends on precedence and the output always parses back to an
// equivalent tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"go.followtheprocess.codes/dims/internal/syntax/ast"
)

const indent = "    "

// Stmt returns the canonical source text of a statement, terminated by a newline.
//
// An else branch that is an [ast.Skip] is omitted, any other Skip prints
// as 'skip;'.
func Stmt(stmt ast.Stmt) string {
	var s strings.Builder
	writeStmt(&s, stmt, 0)

	return s.String()
}

// Expr returns the canonical source text of an expression.
func Expr(expr ast.Expr) string {
	var s strings.Builder
	writeExpr(&s, expr)

	return s.String()
}

// Type returns the keyword for a type.
func Type(typ ast.Type) string {
	return typ.String()
}

func writeStmt(s *strings.Builder, stmt ast.Stmt, depth int) {
	switch stmt := stmt.(type) {
	case *ast.Skip:
		writeLine(s, depth, "skip;")
	case *ast.Sequence:
		writeStmt(s, stmt.First, depth)
		writeStmt(s, stmt.Second, depth)
	case *ast.Declaration:
		writeLine(s, depth, Type(stmt.Type)+" "+stmt.Name+";")
	case *ast.Assignment:
		writeLine(s, depth, stmt.Name+" := "+Expr(stmt.Value)+";")
	case *ast.Print:
		writeLine(s, depth, "print "+Expr(stmt.Value)+";")
	case *ast.If:
		writeLine(s, depth, "if ("+Expr(stmt.Cond)+") then")
		writeStmt(s, stmt.Then, depth+1)

		if _, isSkip := stmt.Else.(*ast.Skip); !isSkip {
			writeLine(s, depth, "else")
			writeStmt(s, stmt.Else, depth+1)
		}

		writeLine(s, depth, "endif")
	case *ast.While:
		writeLine(s, depth, "while ("+Expr(stmt.Cond)+") do")
		writeStmt(s, stmt.Body, depth+1)
		writeLine(s, depth, "endwhile")
	case *ast.Block:
		writeLine(s, depth, "{")
		writeStmt(s, stmt.Body, depth+1)
		writeLine(s, depth, "}")
	default:
		panic(fmt.Sprintf("printer: unhandled statement %T", stmt))
	}
}

func writeExpr(s *strings.Builder, expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.UnaryOp:
		s.WriteString(expr.Op.String())
		writeOperand(s, expr.Operand)
	case *ast.BinaryOp:
		writeOperand(s, expr.Left)
		s.WriteString(" " + expr.Op.String() + " ")
		writeOperand(s, expr.Right)
	case *ast.VariableRef:
		s.WriteString(expr.Name)
	case *ast.BoolLiteral:
		s.WriteString(strconv.FormatBool(expr.Value))
	case *ast.IntLiteral:
		s.WriteString(strconv.Itoa(expr.Value))
	default:
		panic(fmt.Sprintf("printer: unhandled expression %T", expr))
	}
}

// writeOperand writes an operator's operand, wrapping it in parentheses if it
// is a binary operation.
func writeOperand(s *strings.Builder, expr ast.Expr) {
	if _, ok := expr.(*ast.BinaryOp); ok {
		s.WriteByte('(')
		writeExpr(s, expr)
		s.WriteByte(')')

		return
	}

	writeExpr(s, expr)
}

func writeLine(s *strings.Builder, depth int, line string) {
	s.WriteString(strings.Repeat(indent, depth))
	s.WriteString(line)
	s.WriteByte('\n')
}
