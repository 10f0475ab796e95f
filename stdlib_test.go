package eventx_test

import (
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"
)

// The root package is the portable core: config, persistence and the CLI
// carry the module's external dependencies, the primitive itself must not.
func TestCorePackageIsStdlibOnly(t *testing.T) {
	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("read package dir: %v", err)
	}

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			first := path
			if i := strings.Index(path, "/"); i >= 0 {
				first = path[:i]
			}
			// Module paths start with a host name; stdlib paths never
			// contain a dot in their first element.
			if strings.Contains(first, ".") {
				t.Errorf("%s imports non-stdlib package %s", name, path)
			}
		}
	}
}
