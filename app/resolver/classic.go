package resolver

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Classic resolves through a plain DNS nameserver, optionally attaching an
// EDNS0 client subnet so geo-aware authorities answer for that subnet.
type Classic struct {
	nameserver string
	subnet     string
	client     *dns.Client
}

func NewClassic(nameserver string, subnet string, timeout time.Duration) *Classic {
	if nameserver == "" {
		nameserver = "8.8.8.8:53"
	}
	if _, _, err := net.SplitHostPort(nameserver); err != nil {
		nameserver = net.JoinHostPort(nameserver, "53")
	}

	return &Classic{
		nameserver: nameserver,
		subnet:     subnet,
		client:     &dns.Client{Timeout: timeout},
	}
}

func (c *Classic) LookupIP(ctx context.Context, host string, recordType string) ([]string, error) {
	qtype := dns.TypeA
	if recordType == "AAAA" {
		qtype = dns.TypeAAAA
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true
	if c.subnet != "" {
		m.Extra = append(m.Extra, ednsSubnet(c.subnet))
	}

	in, _, err := c.client.ExchangeContext(ctx, m, c.nameserver)
	if err != nil {
		return nil, &ResolutionError{Host: host, Err: err}
	}

	var ips []string
	for i := range in.Answer {
		switch rr := in.Answer[i].(type) {
		case *dns.A:
			ips = append(ips, rr.A.String())
		case *dns.AAAA:
			ips = append(ips, rr.AAAA.String())
		}
	}
	if len(ips) == 0 {
		return nil, &ResolutionError{Host: host}
	}
	return ips, nil
}

func ednsSubnet(subnet string) *dns.OPT {
	var (
		ip   net.IP
		mask int
	)
	if strings.Contains(subnet, "/") {
		addr, ipnet, _ := net.ParseCIDR(subnet)
		ip = addr
		mask, _ = ipnet.Mask.Size()
	} else {
		ip = net.ParseIP(subnet)
		if ip.To4() != nil {
			mask = 32
		} else {
			mask = 128
		}
	}

	e := &dns.EDNS0_SUBNET{
		Code:          dns.EDNS0SUBNET,
		SourceNetmask: uint8(mask),
	}
	if ip4 := ip.To4(); ip4 != nil {
		e.Family = 1
		e.Address = ip4
	} else {
		e.Family = 2
		e.Address = ip
	}

	opt := &dns.OPT{Hdr: dns.RR_Header{Name: ".", Rrtype: dns.TypeOPT}}
	opt.SetUDPSize(dns.DefaultMsgSize)
	opt.Option = append(opt.Option, e)
	return opt
}
