// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"
)

// ErrDivisionByZero is returned for x/0 and x%0
var ErrDivisionByZero = errors.New("division by zero")

type calculatorParams struct {
	Expression string `json:"expression" description:"Arithmetic expression, e.g. (2 + 3) * sqrt(16)"`
}

var calculatorFuncs = map[string]func(args []float64) (float64, error){
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"pow": func(args []float64) (float64, error) {
		if len(args) != 2 {
			return 0, fmt.Errorf("pow takes 2 arguments, got %d", len(args))
		}
		return math.Pow(args[0], args[1]), nil
	},
}

var calculatorConsts = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func unary(f func(float64) float64) func(args []float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("takes 1 argument, got %d", len(args))
		}
		return f(args[0]), nil
	}
}

// Calculator returns a tool that evaluates arithmetic expressions.
// It supports + - * / %, parentheses, unary signs, the constants pi and e,
// and the functions sqrt abs floor ceil round exp log log10 sin cos tan pow.
func Calculator() Tool {
	t, _ := NewFunctionTool("calculator", "Evaluates an arithmetic expression and returns the numeric result.",
		func(_ context.Context, p calculatorParams) (any, error) {
			v, err := Evaluate(p.Expression)
			if err != nil {
				return nil, err
			}
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		})
	return t
}

// Evaluate computes the value of an arithmetic expression
func Evaluate(expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, errors.New("empty expression")
	}

	expr, err := parser.ParseExpr(expression)
	if err != nil {
		return 0, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	v, err := eval(expr)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression %q has no finite value", expression)
	}
	return v, nil
}

func eval(node ast.Expr) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		switch n.Kind {
		case token.INT:
			i, err := strconv.ParseInt(n.Value, 0, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %s: %w", n.Value, err)
			}
			return float64(i), nil
		case token.FLOAT:
			return strconv.ParseFloat(n.Value, 64)
		}
		return 0, fmt.Errorf("unsupported literal %s", n.Value)

	case *ast.ParenExpr:
		return eval(n.X)

	case *ast.Ident:
		if v, ok := calculatorConsts[n.Name]; ok {
			return v, nil
		}
		return 0, fmt.Errorf("unknown identifier %s", n.Name)

	case *ast.UnaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return x, nil
		case token.SUB:
			return -x, nil
		}
		return 0, fmt.Errorf("unsupported operator %s", n.Op)

	case *ast.BinaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return 0, err
		}
		y, err := eval(n.Y)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return x + y, nil
		case token.SUB:
			return x - y, nil
		case token.MUL:
			return x * y, nil
		case token.QUO:
			if y == 0 {
				return 0, ErrDivisionByZero
			}
			return x / y, nil
		case token.REM:
			if y == 0 {
				return 0, ErrDivisionByZero
			}
			return math.Mod(x, y), nil
		}
		return 0, fmt.Errorf("unsupported operator %s", n.Op)

	case *ast.CallExpr:
		ident, ok := n.Fun.(*ast.Ident)
		if !ok {
			return 0, errors.New("unsupported function call")
		}
		fn, ok := calculatorFuncs[ident.Name]
		if !ok {
			return 0, fmt.Errorf("unknown function %s", ident.Name)
		}
		args := make([]float64, len(n.Args))
		for i, arg := range n.Args {
			v, err := eval(arg)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		v, err := fn(args)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ident.Name, err)
		}
		return v, nil
	}

	return 0, fmt.Errorf("unsupported expression %T", node)
}
