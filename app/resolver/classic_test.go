package resolver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

func startTestNameserver(t *testing.T, handler dns.HandlerFunc) string {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	server := &dns.Server{PacketConn: pc, Handler: handler}
	go server.ActivateAndServe()
	t.Cleanup(func() { server.Shutdown() })

	return pc.LocalAddr().String()
}

func TestClassicLookupIP(t *testing.T) {
	var gotSubnet *dns.EDNS0_SUBNET
	addr := startTestNameserver(t, func(w dns.ResponseWriter, r *dns.Msg) {
		if opt := r.IsEdns0(); opt != nil {
			for i := range opt.Option {
				if subnet, ok := opt.Option[i].(*dns.EDNS0_SUBNET); ok {
					gotSubnet = subnet
				}
			}
		}

		m := new(dns.Msg)
		m.SetReply(r)
		rr, _ := dns.NewRR("source.example.org. 60 IN A 203.0.113.9")
		m.Answer = append(m.Answer, rr)
		w.WriteMsg(m)
	})

	c := NewClassic(addr, "203.66.32.98", time.Second*5)
	ips, err := c.LookupIP(context.Background(), "source.example.org", "A")
	if err != nil {
		t.Fatal(err)
	}
	if len(ips) != 1 || ips[0] != "203.0.113.9" {
		t.Errorf("unexpected ips: %v", ips)
	}
	if gotSubnet == nil {
		t.Fatal("EDNS client subnet option missing from query")
	}
	if gotSubnet.Family != 1 || gotSubnet.SourceNetmask != 32 {
		t.Errorf("unexpected subnet option: %+v", gotSubnet)
	}
}

func TestClassicEmptyAnswer(t *testing.T) {
	addr := startTestNameserver(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		w.WriteMsg(m)
	})

	c := NewClassic(addr, "", time.Second*5)
	if _, err := c.LookupIP(context.Background(), "missing.example.org", "A"); err == nil {
		t.Error("expect error on empty answer")
	}
}

func TestValidateSubnet(t *testing.T) {
	for _, valid := range []string{"203.0.113.1", "203.0.113.0/24", "2001:db8::/32"} {
		if err := validateSubnet(valid); err != nil {
			t.Errorf("%s should validate: %v", valid, err)
		}
	}
	for _, invalid := range []string{"example.com", "203.0.113.0/99", ""} {
		if err := validateSubnet(invalid); err == nil {
			t.Errorf("%s should not validate", invalid)
		}
	}
}
