package newtypeinternal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/smmoosavi/the-newtype/internal/logger"
	"github.com/smmoosavi/the-newtype/internal/newtype/parse"
	"github.com/smmoosavi/the-newtype/internal/newtype/pkgref"
)

var Version string

// Main is the main entry point for the generator. It is used by the
// command-line tool directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. wd is the path of the working directory. env is the
// environment variables to use when running the tool. tags is the build tags to
// use when loading packages. tests indicates whether to include test files.
// outFile is the name of the output file to generate in each package. patterns
// are the package patterns to process. resolver decides how generated code
// refers to the Newtype package; nil means a [pkgref.Loader].
//
// It returns a map of output file paths to their contents. Diagnostics of all
// packages are collected and returned together. A resolver failure aborts
// immediately, because no package of the same module can be generated
// without the Newtype package.
func Main(ctx context.Context, wd string, env []string, tags string, tests bool, outFile string, patterns []string, resolver pkgref.Resolver) (map[string][]byte, error) {
	if resolver == nil {
		resolver = pkgref.NewLoader(ctx, env)
	}

	pkgs, err := load(ctx, wd, env, tags, tests, patterns)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("loaded packages", "count", len(pkgs), "patterns", patterns)

	outs := make(map[string][]byte)
	var errs error

	for _, pkg := range pkgs {
		if isTestMain(pkg) {
			// The synthesized main package of a test binary.
			continue
		}

		if len(pkg.Errors) != 0 {
			err := fmt.Errorf("pkg %q has errors", pkg.Name)
			errs = errors.Join(errs, err)
			continue
		}

		g, err := New(pkg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := g.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if isTestVariant(pkg) {
			// Types in non-test files are generated with the plain package.
			g.Retain(func(nt parse.Newtype) bool {
				return isTestFile(pkg.Fset.Position(nt.Desc.Pos()).Filename)
			})
		}

		if err := g.Resolve(resolver); err != nil {
			logger.Logger.Errorw("cannot refer to newtype package", "pkg", pkg.PkgPath, "error", err)
			return nil, err
		}

		code := g.Generate()
		if len(code) == 0 {
			logger.Logger.Debugw("nothing to generate", "pkg", pkg.ID)
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		out := filepath.Join(outDir, outputName(pkg, outFile))
		outs[out] = code
		logger.Logger.Debugw("generated", "pkg", pkg.ID, "file", out, "newtypes", len(g.Newtypes()))
	}
	if errs != nil {
		// Each diagnostic already names its file and line.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// isTestVariant reports whether pkg is a package compiled with its test
// files, such as "p [p.test]" or "p_test [p.test]".
func isTestVariant(pkg *packages.Package) bool {
	return strings.HasSuffix(pkg.ID, ".test]")
}

// isTestMain reports whether pkg is the generated main package of a test
// binary, such as "p.test".
func isTestMain(pkg *packages.Package) bool {
	return strings.HasSuffix(pkg.ID, ".test") && pkg.Name == "main"
}

func isTestFile(filename string) bool {
	return strings.HasSuffix(filename, "_test.go")
}

// outputName returns the name of the file generated for pkg. Newtypes of a
// test variant are written to a test file, so they are compiled only with
// the test files declaring them. An external test package needs its own
// file because it is a different package in the same directory.
//
//	newtype_gen.go                // p
//	newtype_gen_test.go           // p [p.test]
//	newtype_gen_external_test.go  // p_test [p.test]
func outputName(pkg *packages.Package, outFile string) string {
	if !isTestVariant(pkg) {
		return outFile
	}

	base := strings.TrimSuffix(outFile, ".go")
	if strings.HasSuffix(pkg.Name, "_test") {
		return base + "_external_test.go"
	}
	return base + "_test.go"
}

// load runs the go command to load the target packages with syntax and type
// information. Build tag "newtype" is always set, because every generated
// file is constrained by "!newtype" and a stale one must not be seen while
// its replacement is being generated.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	buildTags := "newtype"
	if tags != "" {
		buildTags += "," + tags
	}

	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=" + buildTags},
		Tests:      tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// A package that does not compile cannot be derived. Its errors are
	// reported relative to wd, like the diagnostics of the generator.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}

// reorderErrors flattens joined diagnostics into a single list sorted by
// message, which starts with the position. A type declared in a non-test file
// is checked again in the test variant of its package, so identical
// diagnostics are reported once.
func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	var list []error
	pending := []error{errs}
	for len(pending) != 0 {
		err := pending[0]
		pending = pending[1:]

		if u, ok := err.(interface{ Unwrap() []error }); ok {
			pending = append(pending, u.Unwrap()...)
			continue
		}
		list = append(list, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	list = slices.CompactFunc(list, func(a, b error) bool {
		return a.Error() == b.Error()
	})
	return errors.Join(list...)
}
