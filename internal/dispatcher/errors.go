package dispatcher

import (
	"errors"

	"github.com/Bgoodwin24/insightforge/internal/fetchers"
)

var (
	// ErrUnknownMethod means the method has no catalog entry or transformer
	ErrUnknownMethod = errors.New("unsupported analysis method")
	// ErrMissingPrerequisite means a default request parameter could not be
	// resolved from the active dataset; nothing was sent
	ErrMissingPrerequisite = errors.New("missing analysis prerequisite")
	// ErrPartialJoin means one side of a paired analysis failed or the two
	// sides disagree on their groups
	ErrPartialJoin = errors.New("paired analysis could not be joined")
	// ErrStaleCompletion means a newer analysis was started before this one
	// finished; its result was discarded
	ErrStaleCompletion = errors.New("analysis superseded by a newer request")
	// ErrUnsupportedChart means the method resolves to no chart archetype
	ErrUnsupportedChart = errors.New("unsupported chart type")
)

// UpstreamError is a non-2xx response from the analytics service
type UpstreamError = fetchers.UpstreamError

// IsStale reports whether err only signals a superseded request.
// Callers drop these silently.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleCompletion)
}
