package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/thank243/dnsSync/config"
)

func TestNew(t *testing.T) {
	r, err := New(&config.Resolver{Type: "system"}, time.Second*5)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*System); !ok {
		t.Errorf("want *System, got %T", r)
	}

	r, err = New(&config.Resolver{Type: "doh", EDNSClientSubnet: "203.66.32.98"}, time.Second*5)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*DoH); !ok {
		t.Errorf("want *DoH, got %T", r)
	}

	if _, err = New(&config.Resolver{Type: "doh", EDNSClientSubnet: "bogus"}, time.Second*5); err == nil {
		t.Error("expect error on invalid subnet")
	}
	if _, err = New(&config.Resolver{Type: "carrier-pigeon"}, time.Second*5); err == nil {
		t.Error("expect error on unknown type")
	}
}

func TestSystemLookupIP(t *testing.T) {
	s := &System{}
	ips, err := s.LookupIP(context.Background(), "localhost", "A")
	if err != nil {
		t.Skipf("local resolver unavailable: %v", err)
	}
	t.Log(ips)
}
