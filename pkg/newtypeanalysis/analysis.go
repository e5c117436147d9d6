// Package newtypeanalysis provides an analyzer reporting invalid uses of the
// newtype directives without generating code.
package newtypeanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
	newtypeinternal "github.com/smmoosavi/the-newtype/internal/newtype"
)

// Analyzer validates the types annotated with //newtype:derive in the
// package.
var Analyzer = &analysis.Analyzer{
	Name: "newtype",
	Doc:  "check that types annotated with //newtype:derive are single-field structs",
	URL:  "https://pkg.go.dev/github.com/smmoosavi/the-newtype/pkg/newtypeanalysis",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	g, err := newtypeinternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := g.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			// Joined errors are unrolled one level at a time. A join may hold
			// several diagnostics, so it must never be matched as a whole.
			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Message(),
				})
				continue
			}

			switch u := err.(type) {
			case interface{ Unwrap() []error }:
				errs = append(errs, u.Unwrap()...)
			case interface{ Unwrap() error }:
				errs = append(errs, u.Unwrap())
			}
		}
	}

	return nil, nil
}
