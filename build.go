package oidtree

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// BuildOptions configures Build and Tree.InsertAll.
type BuildOptions struct {
	// Logger receives per-pass progress. If nil, nothing is logged.
	Logger hclog.Logger

	// MaxPasses limits how many times pending declarations are re-driven.
	// Zero means keep going while a pass inserts at least one node.
	MaxPasses int

	// OnUnresolved is called once for each declaration still unresolved
	// when building stops.
	OnUnresolved func(d Declaration)
}

// Report summarizes a bulk insertion.
type Report struct {
	Passes     int           // Number of passes over the pending declarations
	Inserted   int           // Declarations that created a node
	Duplicates int           // Declarations ignored because the position was taken
	Unresolved []Declaration // Declarations whose parent never appeared
}

// Complete returns true if every declaration found its parent.
func (r *Report) Complete() bool {
	return len(r.Unresolved) == 0
}

// Build creates a tree from decls. Declarations may arrive in any order:
// those whose parent is not yet in the tree are retried in later passes,
// until a pass inserts nothing new.
func Build(ctx context.Context, decls []Declaration, opts BuildOptions) (*Tree, *Report, error) {
	t := NewTree()
	report, err := t.InsertAll(ctx, decls, opts)
	if err != nil {
		return nil, nil, err
	}
	return t, report, nil
}

// BuildFrom collects declarations from every source, in order, and builds
// a tree from them. All source errors are reported together.
func BuildFrom(ctx context.Context, opts BuildOptions, sources ...Source) (*Tree, *Report, error) {
	var decls []Declaration
	var merr *multierror.Error
	for i, src := range sources {
		d, err := src.Declarations(ctx)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("source %d: %w", i, err))
			continue
		}
		decls = append(decls, d...)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return Build(ctx, decls, opts)
}

// InsertAll inserts decls into t, re-driving unresolved declarations pass
// after pass. Insertion order within a pass follows decls. The context is
// checked between passes.
func (t *Tree) InsertAll(ctx context.Context, decls []Declaration, opts BuildOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	report := &Report{}
	pending := decls
	for len(pending) > 0 {
		if opts.MaxPasses > 0 && report.Passes >= opts.MaxPasses {
			logger.Debug("pass limit reached", "passes", report.Passes, "pending", len(pending))
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Passes++

		var next []Declaration
		inserted := 0
		for _, d := range pending {
			switch n, outcome := t.Insert(d); outcome {
			case OutcomeInserted:
				inserted++
			case OutcomeDuplicate:
				report.Duplicates++
				logger.Trace("duplicate declaration ignored",
					"declaration", d.Module+"::"+d.Name, "existing", n.TextualForm(), "oid", n.OID())
			default:
				next = append(next, d)
			}
		}
		report.Inserted += inserted
		logger.Debug("insertion pass complete",
			"pass", report.Passes, "inserted", inserted, "pending", len(next))

		pending = next
		if inserted == 0 {
			break
		}
	}

	report.Unresolved = pending
	for _, d := range pending {
		logger.Trace("unresolved parent",
			"declaration", d.Module+"::"+d.Name, "parent", d.ParentName)
		if opts.OnUnresolved != nil {
			opts.OnUnresolved(d)
		}
	}
	if len(pending) > 0 {
		logger.Warn("declarations left unresolved", "count", len(pending))
	}
	return report, nil
}
