package sync

import "fmt"

// StorageError means the document store rejected or could not perform a
// write. A sync that hits one aborts and is recorded as "error"; nothing
// already committed is rolled back.
type StorageError struct {
	Op   string
	Shop string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s failed for shop %q: %v", e.Op, e.Shop, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
