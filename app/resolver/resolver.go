package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/thank243/dnsSync/config"
)

// Resolver looks up the addresses a hostname currently resolves to,
// filtered by record type ("A" or "AAAA").
type Resolver interface {
	LookupIP(ctx context.Context, host string, recordType string) ([]string, error)
}

// ResolutionError means a source hostname yielded no usable address.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("cannot resolve %s: no address returned", e.Host)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func New(c *config.Resolver, timeout time.Duration) (Resolver, error) {
	if c == nil {
		return &System{}, nil
	}

	if c.EDNSClientSubnet != "" {
		if err := validateSubnet(c.EDNSClientSubnet); err != nil {
			return nil, err
		}
	}

	switch c.Type {
	case "", "system":
		return &System{}, nil
	case "doh":
		return NewDoH(c.Nameserver, c.EDNSClientSubnet, timeout), nil
	case "dns":
		return NewClassic(c.Nameserver, c.EDNSClientSubnet, timeout), nil
	default:
		return nil, fmt.Errorf("unknown resolver type: %s", c.Type)
	}
}

// System resolves through the operating environment's stub resolver.
type System struct {
	resolver net.Resolver
}

func (s *System) LookupIP(ctx context.Context, host string, recordType string) ([]string, error) {
	network := "ip4"
	if recordType == "AAAA" {
		network = "ip6"
	}

	addrs, err := s.resolver.LookupIP(ctx, network, host)
	if err != nil {
		return nil, &ResolutionError{Host: host, Err: err}
	}

	var ips []string
	for i := range addrs {
		ips = append(ips, addrs[i].String())
	}
	if len(ips) == 0 {
		return nil, &ResolutionError{Host: host}
	}
	return ips, nil
}

func validateSubnet(subnet string) error {
	if strings.Contains(subnet, "/") {
		if _, _, err := net.ParseCIDR(subnet); err != nil {
			return fmt.Errorf("invalid EDNS client subnet %q: %w", subnet, err)
		}
		return nil
	}
	if net.ParseIP(subnet) == nil {
		return fmt.Errorf("invalid EDNS client subnet %q", subnet)
	}
	return nil
}
