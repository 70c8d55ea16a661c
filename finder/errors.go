package finder

import (
	"fmt"
	"strings"
)

// SourceError is the failure of one shop within a batch.
type SourceError struct {
	Index int
	Shop  string
	Err   error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("%s (#%d): %v", e.Shop, e.Index, e.Err)
}

func (e SourceError) Unwrap() error { return e.Err }

// BatchError reports every shop that failed in a batch, ordered by index.
// The other shops' results are still returned alongside it.
type BatchError struct {
	BatchID  string
	Total    int
	Failures []SourceError
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d shops failed", len(e.Failures), e.Total)
	for _, f := range e.Failures {
		b.WriteString("; ")
		b.WriteString(f.Error())
	}
	return b.String()
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
