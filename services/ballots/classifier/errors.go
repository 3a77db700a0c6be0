package classifier

import "fmt"

// StructureError is a fatal grammar violation in one ballot's markup: a node
// arrived without the context it requires, or carried text no transition
// accepts. It aborts classification of that ballot only.
type StructureError struct {
	Region string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("ballot structure error in %s: %s", e.Region, e.Reason)
}

func structureErrorf(region, format string, args ...any) *StructureError {
	return &StructureError{Region: region, Reason: fmt.Sprintf(format, args...)}
}
