package extension

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/billie-coop/lumen/internal/result"
)

// ErrExpression is returned by Eval for input it cannot compute.
var ErrExpression = errors.New("invalid expression")

var expressionPattern = regexp.MustCompile(`^[\d\s.+\-*/%()]+$`)

// IsExpression reports whether raw looks like arithmetic worth evaluating.
func IsExpression(raw string) bool {
	raw = strings.TrimSpace(raw)
	return expressionPattern.MatchString(raw) &&
		strings.ContainsAny(raw, "0123456789") &&
		strings.ContainsAny(raw, "+-*/%")
}

// Eval computes an arithmetic expression of numbers, + - * / % and
// parentheses.
func Eval(expr string) (float64, error) {
	if !expressionPattern.MatchString(strings.TrimSpace(expr)) {
		return 0, fmt.Errorf("%w: %q", ErrExpression, expr)
	}
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	v, err := evalNode(node)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result is not a number", ErrExpression)
	}
	return v, nil
}

func evalNode(node ast.Expr) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, fmt.Errorf("%w: unexpected %s", ErrExpression, n.Value)
		}
		return strconv.ParseFloat(n.Value, 64)
	case *ast.ParenExpr:
		return evalNode(n.X)
	case *ast.UnaryExpr:
		x, err := evalNode(n.X)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.SUB:
			return -x, nil
		case token.ADD:
			return x, nil
		}
	case *ast.BinaryExpr:
		x, err := evalNode(n.X)
		if err != nil {
			return 0, err
		}
		y, err := evalNode(n.Y)
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
				return 0, fmt.Errorf("%w: division by zero", ErrExpression)
			}
			return x / y, nil
		case token.REM:
			if y == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrExpression)
			}
			return math.Mod(x, y), nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported syntax", ErrExpression)
}

// FormatNumber prints v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewCalcController answers arithmetic queries. Activating the result
// copies it to the clipboard.
func NewCalcController(icon string) *Controller {
	return NewController("Calculator", func(_ context.Context, q Query) (Reply, error) {
		expr := strings.TrimSpace(q.Raw)
		v, err := Eval(expr)
		if err != nil {
			item := result.New("Error!", "Invalid expression: `"+expr+"`", icon)
			return Reply{Items: []result.Item{item}}, nil
		}

		out := FormatNumber(v)
		item := result.New(out, fmt.Sprintf("`%s = %s`\n\nEnter copies the result.", expr, out), icon)
		item.OnEnter = func() error {
			return clipboard.WriteAll(out)
		}
		return Reply{Items: []result.Item{item}}, nil
	},
		WithIcon(icon),
		WithMatcher(func(q Query) bool { return IsExpression(q.Raw) }),
	)
}
