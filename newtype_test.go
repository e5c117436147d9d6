package newtype_test

import (
	"bytes"
	"errors"
	"fmt"
	"go/build"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	newtypeinternal "github.com/smmoosavi/the-newtype/internal/newtype"
	"github.com/smmoosavi/the-newtype/internal/newtype/pkgref"
	"github.com/smmoosavi/the-newtype/pkg/newtypeanalysis"
)

// TestAnalysis tests directive and extraction errors using the Go analysis
// protocol. "// want `REGEXP`" comments in the fixture source files are used
// to check for expected analysis errors.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── analysis/
//	    ├── pkg1/
//	    │   └── *.go // with want comments
//	    └── pkg2/
//	        └── *.go // with want comments
func TestAnalysis(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/analysis"))
	require.NoError(t, err)

	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}

		t.Run(ent.Name(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if t.Failed() {
					t.Logf("\n\tReproduce:\tgo run ./cmd/newtype check ./testdata/analysis/%s", ent.Name())
				}
			}()

			analysistest.Run(t, "", newtypeanalysis.Analyzer, "./testdata/analysis/"+ent.Name())
		})
	}
}

// TestGeneratedUpToDate regenerates a fixture with a committed generated file.
// The committed file is excluded while loading, so a stale copy never affects
// the result.
func TestGeneratedUpToDate(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	outs, err := newtypeinternal.Main(t.Context(), wd, os.Environ(), "", false, "newtype_gen.go", []string{"./testdata/analysis/Generated"}, nil)
	require.NoError(t, err)

	out := filepath.Join("testdata", "analysis", "Generated", "newtype_gen.go")
	require.Contains(t, outs, out)

	want, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(outs[out]))
}

// TestPrograms tests programs in the testdata directory.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── program/
//	    ├── program1/
//	    │   ├── main_pkg.txt --- If main_pkg.txt is not present, "main" will be used as the default package name.
//	    │   ├── main/
//	    │   │   ├── types.go --- Annotated types.
//	    │   │   └── main.go --- Uses the generated code. Excluded by the "newtype" build tag.
//	    │   └── want/
//	    │       └── program_output.txt
//	    └── program2/
//	        ├── no_require.txt --- If present, the module does not require the Newtype package.
//	        ├── main/
//	        │   └── types.go
//	        └── want/
//	            ├── newtype_error.txt
//	            └── newtype_error_prefix.txt
func TestPrograms(t *testing.T) {
	// NOTE: Code snippets were stolen from Wire.
	ents, err := os.ReadDir(filepath.FromSlash("testdata/program"))
	require.NoError(t, err)

	newtypeGo, err := os.ReadFile("newtype.go")
	require.NoError(t, err)

	var tests []*programTest
	for _, ent := range ents {
		name := ent.Name()
		if !ent.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		test, err := newProgramTest(name, newtypeGo)
		if err != nil {
			t.Error(err)
			continue
		}

		tests = append(tests, test)
	}

	for _, test := range tests {
		t.Run(test.Name(), test.Test())
	}
}

// programTest is a test case for a program. It runs the generator for the
// program and runs the program with generated code to check the output.
type programTest struct {
	name      string
	mainPkg   string
	noRequire bool
	files     map[string][]byte
	want      struct {
		ProgramOutput      string
		NewtypeError       string
		NewtypeErrorPrefix string
	}
}

func (test *programTest) Name() string {
	return test.name
}

func (test *programTest) PkgPath() string {
	return fmt.Sprintf("example.com/%s", test.name)
}

func (test *programTest) ProgramPath() string {
	return fmt.Sprintf("%s/%s", test.PkgPath(), test.mainPkg)
}

// wantsError reports whether the generator is expected to fail.
func (test *programTest) wantsError() bool {
	return test.want.NewtypeError != "" || test.want.NewtypeErrorPrefix != ""
}

// newProgramTest creates a new program test case.
func newProgramTest(name string, newtypeGo []byte) (*programTest, error) {
	root := filepath.Join(filepath.FromSlash("testdata/program"), name)
	test := programTest{
		name:  name,
		files: make(map[string][]byte),
	}

	// mainPkg
	mainPkg, err := os.ReadFile(filepath.Join(root, "main_pkg.txt"))
	if errors.Is(err, os.ErrNotExist) {
		mainPkg = []byte("main")
	} else if err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}
	test.mainPkg = string(bytes.TrimSpace(mainPkg))

	// noRequire
	if _, err := os.Stat(filepath.Join(root, "no_require.txt")); err == nil {
		test.noRequire = true
	}

	// want
	programOutput, _ := os.ReadFile(filepath.Join(root, "want", "program_output.txt"))
	newtypeError, _ := os.ReadFile(filepath.Join(root, "want", "newtype_error.txt"))
	newtypeErrorPrefix, _ := os.ReadFile(filepath.Join(root, "want", "newtype_error_prefix.txt"))
	test.want.ProgramOutput = string(bytes.TrimSpace(programOutput))
	test.want.NewtypeError = string(bytes.TrimSpace(newtypeError))
	test.want.NewtypeErrorPrefix = string(bytes.TrimSpace(newtypeErrorPrefix))

	if test.want.ProgramOutput == "" && !test.wantsError() {
		return nil, fmt.Errorf("load test case %s: does not want anything", name)
	}

	// files
	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Bubble up I/O errors
			return err
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			panic(err)
		}

		if !info.Mode().IsRegular() || filepath.Ext(path) != ".go" {
			// Skip non-Go files
			return nil
		}

		if filepath.Base(path) == "newtype_gen.go" {
			// Skip generated files, they might be existed for debugging
			// purposes.
			return nil
		}

		goCode, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		test.files[test.PkgPath()+"/"+filepath.ToSlash(rel)] = goCode
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}

	test.files[pkgref.ImportPath+"/newtype.go"] = newtypeGo
	return &test, nil
}

// materialize copies the program code and newtype.go into the given GOPATH.
func (test *programTest) materialize(gopath string) error {
	// NOTE: Code snippets were stolen from Wire.
	for name, content := range test.files {
		dst := filepath.Join(gopath, "src", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return fmt.Errorf("mkdir %s: %w", name, err)
		}
		if err := os.WriteFile(dst, content, 0o666); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	// Write go.mod file for github.com/smmoosavi/the-newtype
	newtypeDir := filepath.Join(gopath, "src", filepath.FromSlash(pkgref.ImportPath))
	newtypeGomod := fmt.Sprintf(`
	module %s
	go 1.25.0`, pkgref.ImportPath)
	if err := os.WriteFile(filepath.Join(newtypeDir, "go.mod"), []byte(newtypeGomod), 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", pkgref.ImportPath, err)
	}

	// Write go.mod file for example.com/NAME
	testGomodPath := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()), "go.mod")
	testGomod := fmt.Sprintf(`
	module %s
	go 1.25.0
	`, test.PkgPath())
	if !test.noRequire {
		testGomod += fmt.Sprintf(`
	require %s v0.0.0
	replace %s => %s
	`, pkgref.ImportPath, pkgref.ImportPath, newtypeDir)
	}
	if err := os.WriteFile(testGomodPath, []byte(testGomod), 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", test.PkgPath(), err)
	}

	return nil
}

// Test returns a test function for the program test. It runs the generator
// for the program and then checks its error or output messages.
func (test *programTest) Test() func(*testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		defer func() {
			if t.Failed() {
				t.Logf("\n\tReproduce:\tgo run ./cmd/newtype ./testdata/program/%s/%s", test.Name(), test.mainPkg)
			}
		}()

		// Materialize in a temporary directory
		gopath := filepath.Join(os.TempDir(), "newtype_test_"+test.Name())
		require.NoError(t, os.RemoveAll(gopath))
		require.NoError(t, test.materialize(gopath), "Materialization failed")

		// Run the generator
		wd := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()))
		env := append(os.Environ(), "GOPATH="+gopath, "GOWORK=off", "GOPROXY=off", "GOFLAGS=-mod=mod")
		generated, newtypeErr := newtypeinternal.Main(t.Context(), wd, env, "", false, "newtype_gen.go", []string{"pattern=./" + test.mainPkg}, nil)

		// Check for the generator error
		if newtypeErr != nil {
			if test.want.NewtypeErrorPrefix != "" {
				assert.ErrorIs(t, newtypeErr, pkgref.ErrNotRequired)
			}

			newtypeErr = errors.New(relPathInString(newtypeErr.Error(), wd))
			switch {
			case test.want.NewtypeError != "":
				want := normalizeWhitespace(test.want.NewtypeError)
				have := normalizeWhitespace(newtypeErr.Error())
				assert.Equal(t, want, have)
			case test.want.NewtypeErrorPrefix != "":
				have := normalizeWhitespace(newtypeErr.Error())
				assert.True(t, strings.HasPrefix(have, test.want.NewtypeErrorPrefix), "unexpected error: %s", have)
			default:
				require.NoError(t, newtypeErr, "Generator exited with errors unexpectedly")
			}
			return
		}

		if test.wantsError() {
			require.Error(t, newtypeErr, "Generator should have exited with an error")
		}

		// Write generated files
		for name, content := range generated {
			err := os.WriteFile(filepath.Join(wd, name), content, 0o666)
			require.NoError(t, err, "Failed to write a generated file")
		}

		// Run the program
		goCmd := filepath.Join(build.Default.GOROOT, "bin", "go")
		cmd := exec.Command(goCmd, "run", test.ProgramPath())
		cmd.Dir = wd
		cmd.Env = env
		progOut, err := cmd.CombinedOutput()
		require.NoError(t, err, string(progOut))

		// Test
		if test.want.ProgramOutput != "" {
			assert.Equal(t, test.want.ProgramOutput, strings.TrimSpace(string(progOut)))
		}
	}
}

// relPathInString replaces paths in the given string to their relative paths to
// the new working directory.
func relPathInString(s, wd string) string {
	realWD, err := os.Getwd()
	if err != nil {
		return s
	}

	rel, err := filepath.Rel(realWD, wd)
	if err != nil {
		return s
	}

	s = strings.ReplaceAll(s, rel+"/", "")
	s = strings.ReplaceAll(s, rel, "")
	return s
}

// normalizeWhitespace normalizes whitespace in the given string for consistent
// comparison regardless of whitespace style.
func normalizeWhitespace(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\t", "    ")
	return s
}
