package ai

import (
	"sort"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// toolCallBuilder accumulates the streamed fragments of one tool call.
type toolCallBuilder struct {
	id   string
	name strings.Builder
	args strings.Builder
}

// Reconstructor merges a stream of partial tool-call fragments, keyed by call
// index, into complete calls. Name and argument text arrive as sequential
// substrings and are only ever appended; the id overwrites when non-empty.
// Argument text must not be parsed before Finalize.
type Reconstructor struct {
	builders map[int]*toolCallBuilder
}

func NewReconstructor() *Reconstructor {
	return &Reconstructor{builders: make(map[int]*toolCallBuilder)}
}

// Add merges one fragment into the accumulator for its call index.
func (r *Reconstructor) Add(tc schema.ToolCall) {
	idx := 0
	if tc.Index != nil {
		idx = *tc.Index
	}
	b := r.builders[idx]
	if b == nil {
		b = &toolCallBuilder{}
		r.builders[idx] = b
	}
	if tc.ID != "" {
		b.id = tc.ID
	}
	b.name.WriteString(tc.Function.Name)
	b.args.WriteString(tc.Function.Arguments)
}

// Finalize converts the accumulators, in ascending index order, into the
// ordered tool-call list. An accumulator that never received an id was not
// actually invoked by the model and is dropped.
func (r *Reconstructor) Finalize() []schema.ToolCall {
	indexes := make([]int, 0, len(r.builders))
	for idx := range r.builders {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	calls := make([]schema.ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		b := r.builders[idx]
		if b.id == "" {
			continue
		}
		i := idx
		calls = append(calls, schema.ToolCall{
			Index: &i,
			ID:    b.id,
			Type:  "function",
			Function: schema.FunctionCall{
				Name:      b.name.String(),
				Arguments: b.args.String(),
			},
		})
	}
	return calls
}
