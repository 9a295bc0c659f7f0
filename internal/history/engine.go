// Package history runs URI operations and keeps a record of them, so that
// recorded references can later be resolved again against another base.
package history

import (
	"context"
	"fmt"

	"urikit/internal/logger"
	"urikit/internal/store"
	"urikit/internal/uri"
)

type Engine struct {
	store *store.Store
	log   logger.Logger

	// DryRun computes results without recording them.
	DryRun bool
}

type Result struct {
	// ID is the history entry written for this result, empty when nothing
	// was recorded.
	ID       string `json:"id,omitempty"`
	SourceID string `json:"source_id,omitempty"`

	Op       string `json:"op"`
	Base     string `json:"base"`
	Ref      string `json:"ref"`
	Result   string `json:"result"`
	Previous string `json:"previous,omitempty"`
}

// NewEngine returns an engine recording into s. A nil store records nothing.
func NewEngine(s *store.Store, log logger.Logger) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{store: s, log: log}
}

// Apply runs op with base and ref: Merge for store.OpMerge, AppendPath for
// store.OpAppend and ApplyMergePatch (ref being the JSON patch) for
// store.OpEdit.
func Apply(op, base, ref string) (string, error) {
	switch op {
	case store.OpMerge:
		return uri.Merge(base, ref)
	case store.OpAppend:
		return uri.AppendPath(base, ref)
	case store.OpEdit:
		return uri.ApplyMergePatch(base, []byte(ref))
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}
}

// Resolve applies op and records the outcome, failures included.
func (e *Engine) Resolve(ctx context.Context, op, base, ref string) (Result, error) {
	res := Result{Op: op, Base: base, Ref: ref}
	log := e.log.WithContext(ctx).WithFields(logger.Fields{"op": op, "base": base, "ref": ref})

	out, err := Apply(op, base, ref)
	if err != nil {
		log.Debugf("resolution failed: %v", err)
		e.record(ctx, log, &res, err)
		return res, err
	}
	res.Result = out
	log.WithField("result", out).Debug("resolved")
	e.record(ctx, log, &res, nil)
	return res, nil
}

// RebaseByID resolves the reference of a recorded entry against newBase,
// with the entry's operation.
func (e *Engine) RebaseByID(ctx context.Context, id, newBase string) (Result, error) {
	if e.store == nil {
		return Result{}, fmt.Errorf("no history store")
	}
	entry, err := e.store.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if _, err := uri.Parse(newBase); err != nil {
		return Result{}, fmt.Errorf("new base: %w", err)
	}

	res, err := e.Resolve(ctx, entry.Op, newBase, entry.Ref)
	res.SourceID = entry.ID
	res.Previous = entry.Result
	return res, err
}

func (e *Engine) record(ctx context.Context, log logger.Logger, res *Result, resolveErr error) {
	if e.store == nil || e.DryRun {
		return
	}
	p := store.RecordParams{
		Op:     res.Op,
		Base:   res.Base,
		Ref:    res.Ref,
		Result: res.Result,
	}
	if resolveErr != nil {
		p.Error = resolveErr.Error()
	}
	id, err := e.store.Record(ctx, p)
	if err != nil {
		// History is best effort, the result stands.
		log.Warnf("failed to record resolution: %v", err)
		return
	}
	res.ID = id
}
