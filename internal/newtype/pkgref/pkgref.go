// Package pkgref resolves how generated code refers to the package declaring
// the Newtype interface.
package pkgref

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/logger"
)

// ImportPath is the path of the package declaring the Newtype interface.
const ImportPath = "github.com/smmoosavi/the-newtype"

// ErrNotRequired indicates that the build graph of the generated package
// cannot provide [ImportPath]. Generation cannot continue without it.
var ErrNotRequired = errors.New("newtype package is not available in the build")

// IsNewtypeImport reports whether path refers to [ImportPath], including
// vendored copies of it.
func IsNewtypeImport(path string) bool {
	// Source code from "wire/internal/wire/parse.go".
	const vendorPart = "vendor/"
	if i := strings.LastIndex(path, vendorPart); i != -1 && (i == 0 || path[i-1] == '/') {
		path = path[i+len(vendorPart):]
	}
	return path == ImportPath
}

// Ref is a reference to the Newtype package from generated code. Either Self
// is set, or Path and Name are.
type Ref struct {
	// Self indicates that the code is generated inside the Newtype package
	// itself, so no qualifier is needed.
	Self bool

	// Path is the import path to use.
	Path string

	// Name is the package name declared by the package.
	Name string
}

// SelfRef returns a [Ref] for code generated inside the Newtype package.
func SelfRef() Ref { return Ref{Self: true} }

// ExternalRef returns a [Ref] to the Newtype package imported by name.
func ExternalRef(name string) Ref { return Ref{Path: ImportPath, Name: name} }

func (r Ref) String() string {
	if r.Self {
		return "<self>"
	}
	return r.Name
}

// Resolver resolves the [Ref] for a package being generated.
type Resolver interface {
	Resolve(pkg *packages.Package) (Ref, error)
}

// Static is a [Resolver] which always returns the same [Ref].
type Static Ref

func (s Static) Resolve(*packages.Package) (Ref, error) { return Ref(s), nil }

// Loader is the default [Resolver]. It looks up the Newtype package in the
// build graph of the generated package. Results are cached by package
// directory.
type Loader struct {
	ctx   context.Context
	env   []string
	cache *lru.Cache[string, Ref]
}

// NewLoader creates a new [Loader]. ctx and env are used when the Newtype
// package has to be loaded separately.
func NewLoader(ctx context.Context, env []string) *Loader {
	cache, err := lru.New[string, Ref](64)
	if err != nil {
		panic(err) // only fails for non-positive sizes
	}
	return &Loader{ctx: ctx, env: env, cache: cache}
}

// Resolve implements [Resolver].
//
// The package is self-referenced when it is the Newtype package. Otherwise
// the name is taken from the loaded dependencies of the package, or from a
// separate load in the package directory when the package does not depend on
// the Newtype package yet. A failure of that load means the module does not
// require the Newtype package, which is fatal.
func (l *Loader) Resolve(pkg *packages.Package) (Ref, error) {
	if IsNewtypeImport(pkg.PkgPath) {
		return SelfRef(), nil
	}

	if dep := findImport(pkg, make(map[string]bool)); dep != nil {
		return ExternalRef(dep.Name), nil
	}

	dir := packageDir(pkg)
	if ref, ok := l.cache.Get(dir); ok {
		return ref, nil
	}

	logger.Logger.Debugw("loading newtype package separately", "pkg", pkg.PkgPath, "dir", dir)
	cfg := &packages.Config{
		Mode:    packages.NeedName,
		Context: l.ctx,
		Dir:     dir,
		Env:     l.env,
	}
	pkgs, err := packages.Load(cfg, ImportPath)
	if err != nil {
		return Ref{}, notRequired(pkg, err)
	}
	if len(pkgs) != 1 {
		return Ref{}, notRequired(pkg, errors.Newf("found %d packages", len(pkgs)))
	}
	if len(pkgs[0].Errors) != 0 {
		return Ref{}, notRequired(pkg, pkgs[0].Errors[0])
	}

	ref := ExternalRef(pkgs[0].Name)
	l.cache.Add(dir, ref)
	return ref, nil
}

func notRequired(pkg *packages.Package, cause error) error {
	err := errors.Wrapf(ErrNotRequired, "resolve %s for %s: %s", ImportPath, pkg.PkgPath, cause)
	err = errors.WithSecondaryError(err, cause)
	return errors.WithHintf(err, "add it to the module of %s: go get %s", pkg.PkgPath, ImportPath)
}

// findImport searches the Newtype package in the transitive imports of pkg.
func findImport(pkg *packages.Package, seen map[string]bool) *packages.Package {
	for path, imp := range pkg.Imports {
		if seen[path] {
			continue
		}
		seen[path] = true

		if IsNewtypeImport(path) {
			return imp
		}
		if dep := findImport(imp, seen); dep != nil {
			return dep
		}
	}
	return nil
}

func packageDir(pkg *packages.Package) string {
	if pkg.Dir != "" {
		return pkg.Dir
	}
	if len(pkg.GoFiles) != 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	return ""
}
