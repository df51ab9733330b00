// Package commandtest provides declaration fixtures for command tests.
package commandtest

import (
	"os"
	"path/filepath"
	"testing"
)

// SNMP is a YAML declaration file covering the path from iso down to
// sysName, listed out of order.
const SNMP = `
module: SNMPv2-SMI
declarations:
  - {name: sysName, module: SNMPv2-MIB, parent: system, value: 5}
  - {name: system, module: SNMPv2-MIB, parent: mib-2, value: 1}
  - {name: iso, value: 1}
  - {name: org, parent: iso, value: 3}
  - {name: dod, parent: org, value: 6}
  - {name: internet, parent: dod, value: 1}
  - {name: mgmt, parent: internet, value: 2}
  - {name: mib-2, parent: mgmt, value: 1}
`

// Orphans is an HCL declaration file whose parent is never declared.
const Orphans = `
module "VENDOR-MIB" {
  declaration "vendorRoot" {
    parent = "enterprises"
    value  = 42
  }
}
`

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
