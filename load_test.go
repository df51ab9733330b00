package oidtree

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func declNames(decls []Declaration) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	sort.Strings(names)
	return names
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"dir/a.json", FormatYAML},
		{"a.hcl", FormatHCL},
		{"a.oidb", FormatBinary},
		{"IF-MIB", FormatUnknown},
		{"IF-MIB.txt", FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "smi.yaml")
	hclPath := filepath.Join(dir, "if.hcl")
	binPath := filepath.Join(dir, "sys.oidb")
	writeFile(t, yamlPath, []byte(testYAML))
	writeFile(t, hclPath, []byte(testHCL))
	writeFile(t, binPath, EncodeDeclarations([]Declaration{{Name: "system", Module: "SNMPv2-MIB", Value: 1, ParentName: "mib-2"}}))

	decls, err := LoadFiles(context.Background(), yamlPath, hclPath, binPath)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	want := []string{"ifMIB", "iso", "iso", "org", "org", "sysDescr", "system"}
	if diff := cmp.Diff(want, declNames(decls)); diff != "" {
		t.Errorf("LoadFiles names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFilesErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "IF-MIB")
	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, unknown, []byte("IF-MIB DEFINITIONS ::= BEGIN END"))
	writeFile(t, broken, []byte("declarations:\n  - {name: a}\n"))

	_, err := LoadFiles(context.Background(), unknown, broken, filepath.Join(dir, "missing.hcl"))
	if err == nil {
		t.Fatal("LoadFiles succeeded with bad inputs")
	}
	msg := err.Error()
	for _, want := range []string{"unrecognized declaration file format", "missing value", "missing.hcl"} {
		if !strings.Contains(msg, want) {
			t.Errorf("LoadFiles error %q does not mention %q", msg, want)
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "smi.yaml"), []byte(testYAML))
	writeFile(t, filepath.Join(dir, "README"), []byte("not a declaration file"))
	writeFile(t, filepath.Join(dir, "broken.hcl"), []byte(`module "M" {`))
	writeFile(t, filepath.Join(dir, "vendor", "if.hcl"), []byte(testHCL))

	var failed []string
	opts := LoadDirOptions{
		OnError: func(path string, err error) { failed = append(failed, path) },
	}

	decls, err := LoadDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if diff := cmp.Diff([]string{"iso", "org", "sysDescr"}, declNames(decls)); diff != "" {
		t.Errorf("non-recursive LoadDir mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"broken.hcl"}, failed); diff != "" {
		t.Errorf("OnError paths mismatch (-want +got):\n%s", diff)
	}

	opts.Recursive = true
	opts.Extensions = []string{".hcl"}
	failed = nil
	decls, err = LoadDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if diff := cmp.Diff([]string{"ifMIB", "iso", "org"}, declNames(decls)); diff != "" {
		t.Errorf("recursive .hcl LoadDir mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadDir(context.Background(), filepath.Join(dir, "nope"), LoadDirOptions{}); err == nil {
		t.Error("LoadDir of a missing directory succeeded")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"mibs/smi.yaml":     {Data: []byte(testYAML)},
		"mibs/sub/if.hcl":   {Data: []byte(testHCL)},
		"mibs/sub/IF-MIB":   {Data: []byte("raw MIB text")},
		"other/ignored.yml": {Data: []byte(testYAML)},
	}

	decls, err := LoadFS(context.Background(), fsys, "mibs", LoadDirOptions{Recursive: true})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	want := []string{"ifMIB", "iso", "iso", "org", "org", "sysDescr"}
	if diff := cmp.Diff(want, declNames(decls)); diff != "" {
		t.Errorf("LoadFS names mismatch (-want +got):\n%s", diff)
	}

	tree, report, err := Build(context.Background(), decls, BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// iso and org arrive twice; ifMIB and sysDescr have no parent here.
	if report.Duplicates != 2 || len(report.Unresolved) != 2 || tree.Len() != 2 {
		t.Errorf("report = %+v, tree.Len() = %d", report, tree.Len())
	}
}

func TestStaticSourceCopies(t *testing.T) {
	src := StaticSource{{Name: "a", Value: 1}}
	got, err := src.Declarations(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got[0].Name = "changed"
	if src[0].Name != "a" {
		t.Error("StaticSource returned its own backing array")
	}
}

func TestBuildFromDirSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "smi.yaml"), []byte(testYAML))
	writeFile(t, filepath.Join(dir, "sub", "if.hcl"), []byte(testHCL))

	src := DirSource{Dir: dir, Options: LoadDirOptions{Recursive: true}}
	tree, report, err := BuildFrom(context.Background(), BuildOptions{}, src)
	if err != nil {
		t.Fatalf("BuildFrom: %v", err)
	}
	if report.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", report.Duplicates)
	}
	if tree.NodeByOID("1.3") == nil {
		t.Error("org (1.3) missing from tree")
	}
}

func TestLoadFSExtensionCase(t *testing.T) {
	fsys := fstest.MapFS{
		"SMI.YAML":    {Data: []byte(testYAML)},
		"if.Hcl":      {Data: []byte(testHCL)},
		"ignored.yml": {Data: []byte(testYAML)},
	}

	decls, err := LoadFS(context.Background(), fsys, ".", LoadDirOptions{Extensions: []string{".yaml", ".HCL"}})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	want := []string{"ifMIB", "iso", "iso", "org", "org", "sysDescr"}
	if diff := cmp.Diff(want, declNames(decls)); diff != "" {
		t.Errorf("LoadFS names mismatch (-want +got):\n%s", diff)
	}
}
