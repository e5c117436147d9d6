package codefmt

import (
	"fmt"
	"go/types"
	"iter"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var reMajorVersion = regexp.MustCompile(`^v[0-9]+$`)

// AssumedName guesses the package name of an import path when the package
// itself is not loaded. It follows the convention that a package is named
// after the last path element, without a major version suffix and a "go-"
// prefix or "-go" suffix.
//
//	AssumedName("github.com/smmoosavi/the-newtype") => "thenewtype"
//	AssumedName("gopkg.in/yaml.v3")                 => "yaml"
//	AssumedName("github.com/foo/go-bar/v2")         => "bar"
func AssumedName(importPath string) string {
	base := path.Base(importPath)
	if reMajorVersion.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	base = strings.TrimSuffix(base, "-go")
	return NormalizeName(base)
}

// NormalizeName turns name into a lower-case Go identifier by dropping every
// character that cannot appear in one.
//
// Panics if the name is empty.
func NormalizeName(name string) string {
	if name == "" {
		panic("empty name")
	}

	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_')
	})

	lower := cases.Lower(language.Und)
	for i := range chunks {
		chunks[i] = lower.String(chunks[i])
	}

	normalized := strings.Join(chunks, "")
	if normalized == "" || '0' <= normalized[0] && normalized[0] <= '9' {
		normalized = "_" + normalized
	}
	return normalized
}

// DisambiguateName offers an alternative unique names.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}

		// Postfix "_" to the name if it already ends with a number.
		// "answer42_2" is better than "answer422".
		sep := ""
		if name[len(name)-1] != '_' && name[len(name)-1] >= '0' && name[len(name)-1] <= '9' {
			sep = "_"
		}

		for i := 2; ; i++ {
			if !yield(fmt.Sprintf("%s%s%d", name, sep, i)) {
				return
			}
		}
	}
}

// NS is a set of names taken in the generated file's scope.
type NS map[string]struct{}

// NewNS creates a new namespace which reserves all names in the given
// scope.
func NewNS(scope *types.Scope) NS {
	ns := make(NS)
	if scope == nil {
		return ns
	}
	for _, name := range scope.Names() {
		ns.Reserve(name)
	}
	return ns
}

// Reserve marks a name as used in the namespace. If the name is already used,
// it returns false.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Has reports whether the name is used in the namespace.
func (ns NS) Has(name string) bool {
	_, ok := ns[name]
	return ok
}
