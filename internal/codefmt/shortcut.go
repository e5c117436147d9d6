package codefmt

import "go/ast"

// FormatExpr is a shorthand for [Formatter.Expr].
func FormatExpr(pkger Pkger, expr ast.Expr) string {
	return newByPkger(pkger).Expr(expr)
}

// Errorf is a shorthand for [Formatter.Errorf].
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}

// Anchor is a shorthand for [Formatter.Anchor].
func Anchor(pkger Pkger, poser Poser, err error) error {
	return newByPkger(pkger).Anchor(poser, err)
}
