package newtypeinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/codefmt"
	"github.com/smmoosavi/the-newtype/internal/logger"
	"github.com/smmoosavi/the-newtype/internal/newtype/emit"
	"github.com/smmoosavi/the-newtype/internal/newtype/parse"
	"github.com/smmoosavi/the-newtype/internal/newtype/pkgref"
)

// Generator generates Newtype implementations for the target package. Call
// [Build], [Resolve], and then [Generate] to get the generated code. All
// diagnostics are returned by [Build]. Once [Resolve] succeeds, [Generate]
// never fails.
type Generator struct {
	p   *parse.Parser
	buf *bytes.Buffer
	w   *codefmt.Writer

	// nts holds extracted newtypes by type name in source order.
	nts *linkedhashmap.Map
	ref *pkgref.Ref
}

// New creates a new [Generator] for the given package. If the package does
// not satisfy the requirements, an error is returned. The package must have
// its Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Generator, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Generator{
		p:   parser,
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg),
		nts: linkedhashmap.New(),
	}, nil
}

// Build finds annotated types and extracts their witness types. Every
// annotated type is processed even if others fail, and all diagnostics are
// joined. It must be called before [Generate].
func (g *Generator) Build() error {
	descs, errs := g.p.ParseDerives()

	for _, desc := range descs {
		nt, err := g.p.Extract(desc)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if attr, ok := nt.Witness.Attr(); ok {
			logger.Logger.Debugw("ignoring reserved field tag", "type", desc.Name().Name, "newtype", attr)
		}
		g.nts.Put(desc.Name().Name, nt)
	}

	errs = errors.Join(errs, g.p.Validate(g.Newtypes()))
	return errs
}

// Newtypes returns the extracted newtypes in source order.
func (g *Generator) Newtypes() []parse.Newtype {
	nts := make([]parse.Newtype, 0, g.nts.Size())
	it := g.nts.Iterator()
	for it.Next() {
		nts = append(nts, it.Value().(parse.Newtype))
	}
	return nts
}

// Retain drops the newtypes for which keep returns false. Diagnostics found
// by [Build] are not affected.
func (g *Generator) Retain(keep func(parse.Newtype) bool) {
	for _, nt := range g.Newtypes() {
		if !keep(nt) {
			g.nts.Remove(nt.Desc.Name().Name)
		}
	}
}

// Resolve resolves how the generated code refers to the Newtype package. It
// is skipped when there is nothing to generate. An error is a configuration
// problem of the whole package rather than a diagnostic of a type.
func (g *Generator) Resolve(r pkgref.Resolver) error {
	if g.nts.Empty() {
		return nil
	}

	ref, err := r.Resolve(g.p.Pkg())
	if err != nil {
		return err
	}
	g.ref = &ref
	return nil
}

// Generate generates the code for the package. It returns nil if there is
// nothing to generate. It must be called after [Build] and [Resolve]
// succeed.
func (g *Generator) Generate() []byte {
	if g.nts.Empty() {
		return nil
	}
	if g.ref == nil {
		panic("Generate called before Resolve")
	}

	nts := g.Newtypes()
	for _, nt := range nts {
		emit.Reserve(g.w, nt)
	}
	for _, nt := range nts {
		emit.Emit(g.w, nt, *g.ref)
	}
	return g.frameCode()
}

func (g *Generator) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !newtype\n\n")
	fmt.Fprintf(&buf, "// Code generated by %s%s. DO NOT EDIT.\n\n", pkgref.ImportPath, versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", g.p.Pkg().Name)

	if names := g.w.SortedImportNames(); len(names) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, name := range names {
			imp := g.w.Imports()[name]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", name, imp.Path)
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path)
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, g.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
