package version

import "fmt"

// Any avoids optimistic concurrency checks when an expected Event Stream
// version is required.
var Any = CheckAny{}

// Check can be used to perform optimistic concurrency checks when writing
// to an Event Store.
type Check interface {
	isVersionCheck()
}

// CheckAny is a Check variant that will avoid optimistic concurrency checks.
type CheckAny struct{}

func (CheckAny) isVersionCheck() {}

// CheckExact is a Check variant that will ensure the Event Stream
// being written to is at the expected version.
type CheckExact Version

func (CheckExact) isVersionCheck() {}

// ConflictError is an error returned by an Event Store when appending
// some events using an expected Event Stream version that does not match
// the current state of the Event Stream.
type ConflictError struct {
	Expected Version
	Actual   Version
}

func (err ConflictError) Error() string {
	return fmt.Sprintf(
		"version: conflict detected, expected stream version: %d, actual: %d",
		err.Expected,
		err.Actual,
	)
}
