package syncer

import (
	"context"
	"errors"
	"testing"

	"github.com/thank243/dnsSync/app/resolver"
	"github.com/thank243/dnsSync/common/provider"
)

type fakeResolver struct {
	ips map[string][]string
}

func (f *fakeResolver) LookupIP(_ context.Context, host string, _ string) ([]string, error) {
	ips, ok := f.ips[host]
	if !ok || len(ips) == 0 {
		return nil, &resolver.ResolutionError{Host: host}
	}
	return ips, nil
}

type fakeProvider struct {
	zoneID string
	record *provider.Record

	zoneCalls   int
	getCalls    int
	updateCalls int
}

func (f *fakeProvider) ZoneID(_ context.Context, domain string) (string, error) {
	f.zoneCalls++
	if f.zoneID == "" {
		return "", &provider.ZoneLookupError{Domain: domain}
	}
	return f.zoneID, nil
}

func (f *fakeProvider) GetRecord(_ context.Context, _ string, name string, recordType string) (*provider.Record, error) {
	f.getCalls++
	if f.record == nil {
		return nil, &provider.RecordNotFoundError{Name: name, Type: recordType}
	}
	return f.record, nil
}

func (f *fakeProvider) UpdateRecord(_ context.Context, _ string, _ *provider.Record, value string) error {
	f.updateCalls++
	f.record.Content = value
	return nil
}

func newJob(p *fakeProvider, resolved ...string) *Job {
	return &Job{
		Domain:     "cdn.example.com",
		RecordType: "A",
		Sources:    []string{"a.netlify.app"},
		Provider:   p,
		Resolver:   &fakeResolver{ips: map[string][]string{"a.netlify.app": resolved}},
	}
}

func TestRunUnchanged(t *testing.T) {
	p := &fakeProvider{
		zoneID: "zone1",
		record: &provider.Record{ID: "rec1", Name: "cdn.example.com", Type: "A", Content: "203.0.113.5"},
	}
	res, err := newJob(p, "203.0.113.5").Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Unchanged {
		t.Errorf("want Unchanged, got %s", res.Outcome)
	}
	if p.updateCalls != 0 {
		t.Errorf("unchanged run must not write, got %d writes", p.updateCalls)
	}
}

func TestRunUpdated(t *testing.T) {
	p := &fakeProvider{
		zoneID: "zone1",
		record: &provider.Record{ID: "rec1", Name: "cdn.example.com", Type: "A", Content: "203.0.113.5"},
	}
	res, err := newJob(p, "203.0.113.9").Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Updated || res.Old != "203.0.113.5" || res.New != "203.0.113.9" {
		t.Errorf("unexpected result: %+v", res)
	}
	if p.updateCalls != 1 {
		t.Errorf("want exactly one write, got %d", p.updateCalls)
	}
	if p.record.Content != "203.0.113.9" {
		t.Errorf("record not updated: %s", p.record.Content)
	}
}

func TestRunResolutionError(t *testing.T) {
	p := &fakeProvider{zoneID: "zone1"}
	_, err := newJob(p).Run(context.Background())

	var rErr *resolver.ResolutionError
	if !errors.As(err, &rErr) {
		t.Fatalf("want ResolutionError, got %v", err)
	}
	if p.zoneCalls != 0 || p.getCalls != 0 || p.updateCalls != 0 {
		t.Error("resolution failure must abort before any provider call")
	}
}

func TestRunRecordNotFound(t *testing.T) {
	p := &fakeProvider{zoneID: "zone1"}
	_, err := newJob(p, "203.0.113.9").Run(context.Background())

	var nfErr *provider.RecordNotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("want RecordNotFoundError, got %v", err)
	}
	if p.updateCalls != 0 {
		t.Error("missing record must not trigger a write")
	}
}

func TestRunZoneLookupError(t *testing.T) {
	p := &fakeProvider{}
	_, err := newJob(p, "203.0.113.9").Run(context.Background())

	var zErr *provider.ZoneLookupError
	if !errors.As(err, &zErr) {
		t.Fatalf("want ZoneLookupError, got %v", err)
	}
}

func TestRunIdempotent(t *testing.T) {
	p := &fakeProvider{
		zoneID: "zone1",
		record: &provider.Record{ID: "rec1", Name: "cdn.example.com", Type: "A", Content: "203.0.113.5"},
	}
	j := newJob(p, "203.0.113.5")

	for i := 0; i < 2; i++ {
		res, err := j.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != Unchanged {
			t.Errorf("run %d: want Unchanged, got %s", i, res.Outcome)
		}
	}
	if p.updateCalls != 0 {
		t.Errorf("want zero writes across both runs, got %d", p.updateCalls)
	}
	// discovered zone is reused
	if p.zoneCalls != 1 {
		t.Errorf("want one zone lookup across both runs, got %d", p.zoneCalls)
	}
}

func TestResolvePoolsSources(t *testing.T) {
	p := &fakeProvider{
		zoneID: "zone1",
		record: &provider.Record{ID: "rec1", Name: "cdn.example.com", Type: "A", Content: "198.51.100.1"},
	}
	j := &Job{
		Domain:     "cdn.example.com",
		RecordType: "A",
		Sources:    []string{"www.netlify.com", "apex-loadbalancer.netlify.com"},
		Provider:   p,
		Resolver: &fakeResolver{ips: map[string][]string{
			"www.netlify.com":               {"203.0.113.9", "2001:db8::1"},
			"apex-loadbalancer.netlify.com": {"203.0.113.9", "203.0.113.10"},
		}},
	}

	res, err := j.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// first deduplicated v4 address wins without probing
	if res.Outcome != Updated || res.New != "203.0.113.9" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestResolveSurvivesDeadSource(t *testing.T) {
	p := &fakeProvider{
		zoneID: "zone1",
		record: &provider.Record{ID: "rec1", Name: "cdn.example.com", Type: "A", Content: "203.0.113.5"},
	}
	j := &Job{
		Domain:     "cdn.example.com",
		RecordType: "A",
		Sources:    []string{"dead.netlify.com", "www.netlify.com"},
		Provider:   p,
		Resolver: &fakeResolver{ips: map[string][]string{
			"www.netlify.com": {"203.0.113.9"},
		}},
	}

	res, err := j.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Updated || res.New != "203.0.113.9" {
		t.Errorf("unexpected result: %+v", res)
	}

	// only when every source is dead does the run abort
	j.Sources = []string{"dead.netlify.com", "gone.netlify.com"}
	_, err = j.Run(context.Background())
	var rErr *resolver.ResolutionError
	if !errors.As(err, &rErr) {
		t.Errorf("want ResolutionError, got %v", err)
	}
	if p.updateCalls != 1 {
		t.Errorf("failed resolution must not write, got %d writes", p.updateCalls)
	}
}
