package oidtree

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ErrNoWasm is returned by NewPlugin when no module bytes are given.
var ErrNoWasm = errors.New("no wasm module given")

// Error codes from the plugin
const (
	errSuccess        = 0
	errInvalidPointer = 1
	errParseError     = 2
	errNoDeclarations = 3
	errInternalError  = 4
)

func errCodeText(code uint32) string {
	switch code {
	case errInvalidPointer:
		return "invalid pointer"
	case errParseError:
		return "parse error"
	case errNoDeclarations:
		return "no declarations"
	case errInternalError:
		return "internal error"
	default:
		return "unknown plugin error"
	}
}

// Plugin runs a MIB parser compiled to WebAssembly and turns its output
// into declarations.
//
// The guest module must export:
//
//	oidtree_alloc(len) -> ptr
//	oidtree_dealloc(ptr, len)
//	oidtree_load_module(ptr, len) -> errcode
//	oidtree_get_declarations() -> ptr   (length-prefixed declaration stream)
//	oidtree_get_diagnostics() -> ptr    (length-prefixed protobuf Diagnostics)
//	oidtree_get_error() -> ptr          (length-prefixed UTF-8 message)
//	oidtree_reset()
//
// Length prefixes are little-endian uint32. The declaration stream uses the
// format read by DecodeDeclarations.
//
// Plugin is NOT safe for concurrent use. Each goroutine that needs to
// parse MIB files should create its own Plugin.
type Plugin struct {
	runtime wazero.Runtime
	module  api.Module

	// Cached function exports
	fnAlloc           api.Function
	fnDealloc         api.Function
	fnLoadModule      api.Function
	fnGetDeclarations api.Function
	fnGetDiagnostics  api.Function
	fnGetError        api.Function
	fnReset           api.Function
}

// NewPlugin compiles and instantiates a guest parser. Call Close when done.
func NewPlugin(ctx context.Context, wasm []byte) (*Plugin, error) {
	if len(wasm) == 0 {
		return nil, ErrNoWasm
	}

	runtime := wazero.NewRuntime(ctx)

	module, err := runtime.Instantiate(ctx, wasm)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("instantiating wasm: %w", err)
	}

	p := &Plugin{
		runtime:           runtime,
		module:            module,
		fnAlloc:           module.ExportedFunction("oidtree_alloc"),
		fnDealloc:         module.ExportedFunction("oidtree_dealloc"),
		fnLoadModule:      module.ExportedFunction("oidtree_load_module"),
		fnGetDeclarations: module.ExportedFunction("oidtree_get_declarations"),
		fnGetDiagnostics:  module.ExportedFunction("oidtree_get_diagnostics"),
		fnGetError:        module.ExportedFunction("oidtree_get_error"),
		fnReset:           module.ExportedFunction("oidtree_reset"),
	}

	exports := []struct {
		name string
		fn   api.Function
	}{
		{"oidtree_alloc", p.fnAlloc},
		{"oidtree_dealloc", p.fnDealloc},
		{"oidtree_load_module", p.fnLoadModule},
		{"oidtree_get_declarations", p.fnGetDeclarations},
		{"oidtree_get_diagnostics", p.fnGetDiagnostics},
		{"oidtree_get_error", p.fnGetError},
		{"oidtree_reset", p.fnReset},
	}
	var missing []string
	for _, e := range exports {
		if e.fn == nil {
			missing = append(missing, e.name)
		}
	}
	if len(missing) > 0 {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("missing required WASM exports: %v", missing)
	}
	if module.Memory() == nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("wasm module exports no memory")
	}

	return p, nil
}

// Close releases resources associated with the plugin.
func (p *Plugin) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

// LoadModule hands the raw bytes of one MIB file to the guest parser.
// Call this for each MIB file, then call Declarations.
func (p *Plugin) LoadModule(ctx context.Context, source []byte) error {
	if len(source) == 0 {
		return nil // Empty source is a no-op
	}

	results, err := p.fnAlloc.Call(ctx, uint64(len(source)))
	if err != nil {
		return fmt.Errorf("alloc failed: %w", err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return fmt.Errorf("allocation failed (out of memory?)")
	}

	if !p.module.Memory().Write(ptr, source) {
		// Dealloc errors ignored: memory is reclaimed when the instance closes.
		_, _ = p.fnDealloc.Call(ctx, uint64(ptr), uint64(len(source)))
		return fmt.Errorf("memory write failed")
	}

	results, err = p.fnLoadModule.Call(ctx, uint64(ptr), uint64(len(source)))
	_, _ = p.fnDealloc.Call(ctx, uint64(ptr), uint64(len(source)))
	if err != nil {
		return fmt.Errorf("load_module call failed: %w", err)
	}

	if errCode := uint32(results[0]); errCode != errSuccess {
		return fmt.Errorf("%s (code %d): %s", errCodeText(errCode), errCode, p.errorMessage(ctx))
	}
	return nil
}

// Declarations returns the declarations of every module loaded so far.
// Plugin implements Source.
func (p *Plugin) Declarations(ctx context.Context) ([]Declaration, error) {
	results, err := p.fnGetDeclarations.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_declarations call failed: %w", err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return nil, nil
	}

	data, err := p.readLengthPrefixed(ptr)
	if err != nil {
		return nil, fmt.Errorf("reading declarations: %w", err)
	}
	return DecodeDeclarations(data)
}

// Diagnostics returns the warnings and errors reported while parsing.
func (p *Plugin) Diagnostics(ctx context.Context) ([]Diagnostic, error) {
	results, err := p.fnGetDiagnostics.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_diagnostics call failed: %w", err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return nil, nil // No diagnostics
	}

	data, err := p.readLengthPrefixed(ptr)
	if err != nil {
		return nil, fmt.Errorf("reading diagnostics: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeDiagnostics(data)
}

// Reset discards every loaded module.
func (p *Plugin) Reset(ctx context.Context) {
	_, _ = p.fnReset.Call(ctx)
}

// errorMessage reads the last error message from the guest.
func (p *Plugin) errorMessage(ctx context.Context) string {
	results, err := p.fnGetError.Call(ctx)
	if err != nil || results[0] == 0 {
		return "unknown error"
	}
	msg, err := p.readLengthPrefixed(uint32(results[0]))
	if err != nil {
		return "unknown error"
	}
	return string(msg)
}

// readLengthPrefixed copies a length-prefixed buffer out of guest memory.
// The copy stays valid after the guest reuses the memory.
func (p *Plugin) readLengthPrefixed(ptr uint32) ([]byte, error) {
	mem := p.module.Memory()
	lenBytes, ok := mem.Read(ptr, 4)
	if !ok {
		return nil, fmt.Errorf("failed to read length")
	}
	n := binary.LittleEndian.Uint32(lenBytes)

	data, ok := mem.Read(ptr+4, n)
	if !ok {
		return nil, fmt.Errorf("failed to read %d bytes", n)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
