package catalog

import "fmt"

// TransportError means the catalog service could not be reached at all:
// DNS failure, refused connection, timeout. Retrying later may succeed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the service was reached but answered with a
// non-success HTTP status.
type ProtocolError struct {
	Op     string
	Status int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// FormatError means the service answered successfully but the payload did
// not have the expected shape.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
