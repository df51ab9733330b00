package oidtree

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Severity indicates the severity level of a diagnostic.
type Severity uint32

const (
	// SeverityError indicates a fatal error.
	SeverityError Severity = 0
	// SeverityWarning indicates a non-fatal warning.
	SeverityWarning Severity = 1
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents a parse diagnostic reported by a plugin.
type Diagnostic struct {
	Severity Severity // Error or warning
	Message  string   // Human-readable message
	Start    uint32   // Byte offset in source
	End      uint32   // Byte offset in source
}

// Protobuf field numbers of the plugin diagnostics messages:
//
//	message Diagnostics { repeated Diagnostic items = 1; }
//	message Diagnostic  { uint32 severity = 1; string message = 2; uint32 start = 3; uint32 end = 4; }
const (
	fieldDiagnosticsItems = 1

	fieldDiagnosticSeverity = 1
	fieldDiagnosticMessage  = 2
	fieldDiagnosticStart    = 3
	fieldDiagnosticEnd      = 4
)

// decodeDiagnostics decodes a protobuf Diagnostics message. Unknown fields
// are skipped.
func decodeDiagnostics(b []byte) ([]Diagnostic, error) {
	var result []Diagnostic
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("reading diagnostics tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num == fieldDiagnosticsItems && typ == protowire.BytesType {
			item, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("reading diagnostic: %w", protowire.ParseError(n))
			}
			d, err := decodeDiagnostic(item)
			if err != nil {
				return nil, err
			}
			result = append(result, d)
			b = b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("skipping diagnostics field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return result, nil
}

func decodeDiagnostic(b []byte) (Diagnostic, error) {
	var d Diagnostic
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return d, fmt.Errorf("reading diagnostic tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType &&
			(num == fieldDiagnosticSeverity || num == fieldDiagnosticStart || num == fieldDiagnosticEnd):
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return d, fmt.Errorf("reading diagnostic field %d: %w", num, protowire.ParseError(n))
			}
			switch num {
			case fieldDiagnosticSeverity:
				d.Severity = Severity(v)
			case fieldDiagnosticStart:
				d.Start = uint32(v)
			case fieldDiagnosticEnd:
				d.End = uint32(v)
			}
			b = b[n:]
		case typ == protowire.BytesType && num == fieldDiagnosticMessage:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return d, fmt.Errorf("reading diagnostic message: %w", protowire.ParseError(n))
			}
			d.Message = v
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return d, fmt.Errorf("skipping diagnostic field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return d, nil
}
