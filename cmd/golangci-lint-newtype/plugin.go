// golangcilintnewtype package provides a plugin for golangci-lint to integrate
// the newtype analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-newtype binary reporting misplaced or
// invalid //newtype:derive directives.
package golangcilintnewtype

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/smmoosavi/the-newtype/pkg/newtypeanalysis"
)

func init() {
	register.Plugin("newtype", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return NewtypeLinter{}, nil
}

type NewtypeLinter struct{}

func (NewtypeLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{newtypeanalysis.Analyzer}, nil
}

// GetLoadMode requires type information, because hand-written methods are
// found through the method sets of the annotated types.
func (NewtypeLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
