package utils

import (
	"reflect"
	"testing"
)

func TestImportCandidates(t *testing.T) {
	got := ImportCandidates("/p/main.jsc", "./lib/math")
	want := []string{"/p/lib/math", "/p/lib/math.tree.yaml", "/p/lib/math.tree.yml", "/p/lib/math.jsc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImportCandidates = %v, want %v", got, want)
	}

	got = ImportCandidates("/p/main.jsc", "./util.jsc")
	if !reflect.DeepEqual(got, []string{"/p/util.jsc"}) {
		t.Errorf("ImportCandidates with extension = %v", got)
	}

	got = ImportCandidates("/p/a/b.jsc", "../c")
	if got[0] != "/p/c" {
		t.Errorf("parent import resolved to %s", got[0])
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/p/main.jsc", "main"},
		{"/p/lib/math.tree.yaml", "lib.math"},
		{"/p/lib/v1.2/x.jsc", "lib.v1_2.x"},
		{"/other/x.jsc", "_.other.x"},
	}
	for _, tt := range tests {
		if got := QualifiedName("/p", tt.path); got != tt.want {
			t.Errorf("QualifiedName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExtractModuleName(t *testing.T) {
	if got := ExtractModuleName("/p/lib/math.tree.yaml"); got != "math" {
		t.Errorf("ExtractModuleName = %q", got)
	}
	if got := GetModuleDir("/p/lib/math.jsc"); got != "/p/lib" {
		t.Errorf("GetModuleDir = %q", got)
	}
}
