package agent

import (
	"errors"
	"fmt"

	"dapoerjuna/tool"
)

// UpstreamError reports a failed model or retriever call. Op names the
// boundary that failed ("model.rewrite", "retriever.search", ...).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream call %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// LoopBoundError reports a decision loop that hit the iteration cap without
// producing a final answer.
type LoopBoundError struct {
	Steps int
}

func (e *LoopBoundError) Error() string {
	return fmt.Sprintf("decision loop exceeded %d steps", e.Steps)
}

// errorReply renders a captured failure as the assistant's user-facing
// final message. Every failure path of a turn converges here; nothing is
// retried and nothing already written to memory is rolled back.
func errorReply(err error) string {
	var (
		formatErr   *tool.FormatError
		dispatchErr *tool.DispatchError
		toolErr     *tool.ToolError
		loopErr     *LoopBoundError
	)
	switch {
	case errors.As(err, &formatErr):
		return "Tool format salah."
	case errors.As(err, &dispatchErr):
		return fmt.Sprintf("Tool `%s` tidak dikenal.", dispatchErr.Name)
	case errors.As(err, &toolErr):
		return fmt.Sprintf("Tool `%s` gagal: %s", toolErr.Tool, toolErr.Message)
	case errors.As(err, &loopErr):
		return "Maaf, Juna muter-muter terlalu lama mencari jawabannya. Coba ulangi pertanyaanmu."
	default:
		return "Maaf, terjadi kesalahan."
	}
}
