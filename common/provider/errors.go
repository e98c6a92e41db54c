package provider

import (
	"fmt"
)

// ZoneLookupError means no zone matched the root of the target domain.
type ZoneLookupError struct {
	Domain string
	Err    error
}

func (e *ZoneLookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot find zone for %s: %v", e.Domain, e.Err)
	}
	return fmt.Sprintf("cannot find zone for %s", e.Domain)
}

func (e *ZoneLookupError) Unwrap() error { return e.Err }

// RecordNotFoundError means the zone has no record for (name, type). Records
// are never created here, a matching record must already exist.
type RecordNotFoundError struct {
	Name string
	Type string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("no %s record found for %s", e.Type, e.Name)
}

// ProviderError wraps a failed provider API call, carrying the HTTP status and
// response body when the transport exposes them.
type ProviderError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider %s failed: status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
