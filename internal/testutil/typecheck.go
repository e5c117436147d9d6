// Package testutil builds type-checked packages from source for tests.
package testutil

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// PkgPath is the import path of packages built by [Check].
const PkgPath = "example.com/p"

// Check type-checks the sources as one package at [PkgPath]. The first
// source is named test.go, and the others test2.go, test3.go, and so on.
// Standard library imports are resolved from source.
func Check(t testing.TB, srcs ...string) *packages.Package {
	t.Helper()
	return CheckAt(t, PkgPath, srcs...)
}

// CheckAt is like [Check] with a custom import path.
func CheckAt(t testing.TB, pkgPath string, srcs ...string) *packages.Package {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	var names []string
	for i, src := range srcs {
		name := "test.go"
		if i != 0 {
			name = fmt.Sprintf("test%d.go", i+1)
		}
		file, err := parser.ParseFile(fset, name, src, parser.ParseComments|parser.SkipObjectResolution)
		require.NoError(t, err)
		files = append(files, file)
		names = append(names, name)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	typesPkg, err := conf.Check(pkgPath, fset, files, info)
	require.NoError(t, err)

	return &packages.Package{
		ID:        pkgPath,
		Name:      typesPkg.Name(),
		PkgPath:   typesPkg.Path(),
		GoFiles:   names,
		Fset:      fset,
		Syntax:    files,
		Types:     typesPkg,
		TypesInfo: info,
	}
}
