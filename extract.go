package formdata

import (
	"fmt"

	eng "github.com/lorefnon/go-formdata/internal/engine"
)

// Accumulator is the mutable nested structure extraction folds into. It
// may be reused across calls to merge successive submissions: slots
// populated by an earlier call and absent from the current bag stay
// untouched, slots present in the current bag are overwritten.
//
// At most one extraction call may mutate a given Accumulator at a time;
// serializing concurrent calls is the caller's responsibility.
type Accumulator struct {
	tree *eng.Tree
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{tree: eng.New()}
}

// DefaultMaxArrayIndex caps explicit array indexes accepted per call.
// Extending an array fills every skipped position with a placeholder
// node, so an unbounded index in a hostile key (`a[2000000000]`) would
// otherwise allocate the process to death.
const DefaultMaxArrayIndex = 10_000

// Opt bundles extraction options. When several are passed, the last wins.
type Opt struct {
	// Codecs are layered over the default registry for this call only.
	// They may override built-in tags; duplicate tags within this list
	// fail the call before any entry is processed.
	Codecs []Codec
	// Into continues folding into a previously used Accumulator instead
	// of starting empty.
	Into *Accumulator
	// MaxArrayIndex caps explicit array indexes for this call; keys
	// exceeding it are rejected as malformed_path. Zero or negative means
	// DefaultMaxArrayIndex.
	MaxArrayIndex int
}

// Result is the output of one extraction pass: three views of the same
// accumulated tree plus per-entry diagnostics.
type Result struct {
	Combined map[string]any // every decoded leaf
	Fields   map[string]any // leaves decoded from text only
	Files    map[string]any // uploaded blob leaves only
	// Issues lists the entries that contributed nothing and why. A bad
	// entry never aborts the pass.
	Issues Issues
	// Accumulator is the tree this pass folded into. Pass it back via
	// Opt.Into to merge a later submission.
	Accumulator *Accumulator
}

// Extract folds a flat bag into nested structures. The only error it
// returns is CodeDuplicateCodecTag from registry construction; everything
// else is recovered per entry and reported through Result.Issues.
func Extract(bag Bag, opts ...Opt) (Result, error) {
	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	reg, err := defaultRegistry.Merge(opt.Codecs...)
	if err != nil {
		return Result{}, err
	}
	acc := opt.Into
	if acc == nil {
		acc = NewAccumulator()
	}
	maxIndex := opt.MaxArrayIndex
	if maxIndex <= 0 {
		maxIndex = DefaultMaxArrayIndex
	}

	pass := eng.NewPass(acc.tree)
	var issues Issues
	for _, e := range bag {
		if e.Value.IsEmpty() {
			// An empty value contributes nothing and never clears
			// accumulated state, but it still materializes the containers
			// above it (an empty `profile.firstname` yields `profile: {}`).
			if path, _, perr := ParseKey(e.Key); perr == nil && oversizedIndex(path, maxIndex) < 0 {
				pass.Materialize(toSegs(path), e.Value.IsBlob())
			}
			continue
		}
		path, tag, perr := ParseKey(e.Key)
		if perr != nil {
			if iss, ok := AsIssues(perr); ok {
				issues = AppendIssues(issues, iss...)
			} else {
				issues = AppendIssues(issues, Issue{Key: e.Key, Code: CodeMalformedPath, Message: perr.Error(), Cause: perr})
			}
			continue
		}
		if idx := oversizedIndex(path, maxIndex); idx >= 0 {
			issues = AppendIssues(issues, Issue{
				Key:     e.Key,
				Code:    CodeMalformedPath,
				Message: fmt.Sprintf("array index %d exceeds limit %d", idx, maxIndex),
				Params:  map[string]any{"index": idx, "limit": maxIndex},
			})
			continue
		}
		c, ok := reg.resolve(tag, e.Value)
		if !ok {
			issues = AppendIssues(issues, Issue{
				Key:     e.Key,
				Code:    CodeUnknownCodec,
				Message: fmt.Sprintf("no codec registered for tag %q", tag),
				Params:  map[string]any{"tag": tag},
			})
			continue
		}
		v, derr := c.Decode(e.Value)
		if derr != nil {
			issues = AppendIssues(issues, Issue{Key: e.Key, Code: CodeDecodeFailure, Message: derr.Error(), Cause: derr})
			continue
		}
		pass.Assign(toSegs(path), v, e.Value.IsBlob())
	}

	return Result{
		Combined:    acc.tree.Render(eng.ViewCombined),
		Fields:      acc.tree.Render(eng.ViewFields),
		Files:       acc.tree.Render(eng.ViewFiles),
		Issues:      issues,
		Accumulator: acc,
	}, nil
}

func oversizedIndex(p Path, limit int) int {
	for _, s := range p {
		if s.Kind == SegmentIndex && s.Index > limit {
			return s.Index
		}
	}
	return -1
}

func toSegs(p Path) []eng.Seg {
	segs := make([]eng.Seg, len(p))
	for i, s := range p {
		switch s.Kind {
		case SegmentKey:
			segs[i] = eng.Seg{Name: s.Name}
		case SegmentIndex:
			segs[i] = eng.Seg{Index: s.Index}
		default:
			segs[i] = eng.Seg{Index: eng.AppendIndex}
		}
	}
	return segs
}
