package provider

import (
	"context"
)

// Record is a single provider-side DNS record. The ID is an opaque handle
// assigned by the provider.
type Record struct {
	ID      string
	Name    string
	Type    string
	Content string
	TTL     int64
}

type Client interface {
	// ZoneID returns the zone handle for a registrable domain.
	ZoneID(ctx context.Context, domain string) (string, error)
	// GetRecord returns the existing record for (zone, name, type).
	GetRecord(ctx context.Context, zoneID string, name string, recordType string) (*Record, error)
	// UpdateRecord replaces the record value.
	UpdateRecord(ctx context.Context, zoneID string, record *Record, value string) error
}
