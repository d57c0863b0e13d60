package skemajs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/skemajs/internal/translate"
)

// Issue codes.
const (
	CodeInvalidOption     = "invalid_option"
	CodeDepthExceeded     = translate.CodeDepthExceeded
	CodeCycleTruncated    = translate.CodeCycleTruncated
	CodeUnrepresentable   = translate.CodeUnrepresentable
	CodeInvalidDefinition = translate.CodeInvalidDefinition
)

var (
	// ErrInvalidOption reports a malformed Options value. Nothing is
	// translated when it is returned.
	ErrInvalidOption = errors.New("invalid option")
	// ErrDepthExceeded reports a definition nested deeper than
	// Options.MaxDepth.
	ErrDepthExceeded = translate.ErrDepthExceeded
	// ErrInvalidDefinition reports a dangling node ID or a lazy node that
	// resolved to nothing.
	ErrInvalidDefinition = translate.ErrInvalidDefinition
)

// Issue is one finding, fatal or not.
type Issue struct {
	Path    string // Root-anchored document location, for example #/properties/a.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: option name, kind name, etc.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_option at target
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// fail joins a sentinel with the issue describing it, so callers can use
// both errors.Is and AsIssues.
func fail(sentinel error, it Issue) error {
	return fmt.Errorf("%w: %w", sentinel, Issues{it})
}
