package oidtree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testYAML = `
module: SNMPv2-SMI
declarations:
  - name: iso
    value: 1
  - {name: org, parent: iso, value: 3}
  - {name: sysDescr, module: SNMPv2-MIB, parent: system, value: 1}
`

func TestParseYAML(t *testing.T) {
	got, err := ParseYAML([]byte(testYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	want := []Declaration{
		{Name: "iso", Module: "SNMPv2-SMI", Value: 1},
		{Name: "org", Module: "SNMPv2-SMI", Value: 3, ParentName: "iso"},
		{Name: "sysDescr", Module: "SNMPv2-MIB", Value: 1, ParentName: "system"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseYAML mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLAcceptsJSON(t *testing.T) {
	src := `{"module": "IF-MIB", "declarations": [{"name": "ifMIB", "parent": "mib-2", "value": 31}]}`
	got, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML(json): %v", err)
	}
	want := []Declaration{{Name: "ifMIB", Module: "IF-MIB", Value: 31, ParentName: "mib-2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseYAML(json) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing name", "declarations:\n  - {value: 1}\n", "missing name"},
		{"missing value", "declarations:\n  - {name: a}\n", "missing value"},
		{"negative value", "declarations:\n  - {name: a, value: -1}\n", "out of range"},
		{"too large", "declarations:\n  - {name: a, value: 4294967296}\n", "out of range"},
		{"not yaml", "declarations: [", "decoding declarations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.src))
			if err == nil {
				t.Fatalf("ParseYAML(%q) succeeded, want error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ParseYAML(%q) error = %q, want it to contain %q", tt.src, err, tt.wantMsg)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smi.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	decls, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if len(decls) != 3 {
		t.Errorf("LoadYAML returned %d declarations, want 3", len(decls))
	}

	_, err = LoadYAML(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("LoadYAML(missing) error = %v, want it to name the file", err)
	}
}
