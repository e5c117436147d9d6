package codefmt

import (
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer is a writer for generated code. It collects the imports the
// generated file needs while code is written.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	ns      NS
}

// NewWriter creates a new [Writer]. Names declared in the package scope are
// reserved, so imports never shadow them.
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	var scope *types.Scope
	if pkg.Types != nil {
		scope = pkg.Types.Scope()
	}
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
		ns:      NewNS(scope),
	}
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.fmt.Fprintf(w.w, format, args...)
}

// Formatter returns the formatter of the writer.
func (w *Writer) Formatter() Formatter {
	return w.fmt
}

// Reserve marks a name as used so that no import takes it. Type parameter
// names must be reserved before any import is added, because they shadow
// package names inside generic declarations.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

type Import struct {
	// Path is the import path.
	Path string

	// HasAlias indicates that the import needs an explicit name.
	HasAlias bool
}

// Imports returns the collected imports by their local names.
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// SortedImportNames returns the local names of the collected imports in
// lexical order.
func (w *Writer) SortedImportNames() []string {
	return slices.Sorted(maps.Keys(w.imports))
}

// Import adds an import for the package with the given path. name is the
// preferred local name. It returns the name the generated code must use,
// which differs from name only if name is taken.
//
//	fmtName := w.Import("fmt", "fmt")
//	w.Printf("%s.Println(\"Hello, World!\")", fmtName)
func (w *Writer) Import(path, name string) string {
	realName := w.packageName(path)
	if realName == "" {
		realName = AssumedName(path)
	}
	if name == "" {
		name = realName
	}

	for name := range DisambiguateName(name) {
		prev, ok := w.imports[name]
		if ok && prev.Path == path {
			// Already imported with the same name.
			return name
		}
		if !ok && !w.ns.Has(name) {
			w.imports[name] = Import{Path: path, HasAlias: name != realName}
			return name
		}
	}

	panic("unreachable")
}

// packageName returns the declared name of an imported package, or an empty
// string if the package is not a direct import.
func (w *Writer) packageName(path string) string {
	if w.pkg.Types == nil {
		return ""
	}
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			return imp.Name()
		}
	}
	return ""
}

// RewriteImports returns the given AST node rewritten to refer to other
// packages by the names imported into the generated file. The local name used
// in the user's source is kept unless it is taken. Expressions are copied
// before rewriting; other nodes are modified in place.
func RewriteImports[T ast.Node](w *Writer, node T) T {
	info := w.pkg.TypesInfo
	if info == nil {
		return node
	}

	if expr, ok := any(node).(ast.Expr); ok {
		node = cloneExpr(expr).(T)
	}

	return astutil.Apply(node, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {

		// Unqualified identifiers from dot imports, such as "List" without
		// the "list." prefix
		case *ast.Ident:
			// The type of an embedded field also names the field, and Defs
			// maps it to the field. The referenced type is in Uses.
			obj := info.Uses[node]
			if obj == nil {
				obj = info.ObjectOf(node)
			}
			if obj == nil {
				return false
			}

			pkg := obj.Pkg()
			if pkg == nil || pkg.Path() == w.pkg.PkgPath || obj.Parent() != pkg.Scope() {
				return true
			}

			newPkgName := w.Import(pkg.Path(), pkg.Name())
			c.Replace(&ast.SelectorExpr{
				X: &ast.Ident{
					NamePos: node.NamePos,
					Name:    newPkgName,
				},
				Sel: &ast.Ident{
					NamePos: node.NamePos + token.Pos(len(newPkgName)+1),
					Name:    node.Name,
				},
			})
			return false

		// Qualified identifiers, such as "list.List"
		case *ast.SelectorExpr:
			pkgIdent, ok := node.X.(*ast.Ident)
			if !ok {
				return true
			}

			pkgName, ok := info.ObjectOf(pkgIdent).(*types.PkgName)
			if !ok {
				// The qualifier is not a package name.
				return true
			}

			newPkgName := w.Import(pkgName.Imported().Path(), pkgName.Name())
			c.Replace(&ast.SelectorExpr{
				X: &ast.Ident{
					NamePos: pkgIdent.NamePos,
					Name:    newPkgName,
				},
				Sel: &ast.Ident{
					NamePos: pkgIdent.NamePos + token.Pos(len(newPkgName)+1),
					Name:    node.Sel.Name,
				},
			})
			return false
		}

		// Continue traversing the AST.
		return true
	}, nil).(T)
}
