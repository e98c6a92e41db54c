package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultDoHEndpoint = "https://dns.google/resolve"

var recordTypeCode = map[string]int{
	"A":    1,
	"AAAA": 28,
}

type dohAnswer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	Data string `json:"data"`
}

type dohResponse struct {
	Status int         `json:"Status"`
	Answer []dohAnswer `json:"Answer"`
}

// DoH resolves through a DNS-over-HTTPS endpoint speaking the dns-json
// format, optionally carrying an EDNS client subnet.
type DoH struct {
	endpoint string
	subnet   string
	client   *resty.Client
}

func NewDoH(endpoint string, subnet string, timeout time.Duration) *DoH {
	if endpoint == "" {
		endpoint = defaultDoHEndpoint
	}

	cli := resty.New().SetTimeout(timeout).SetHeader("accept", "application/dns-json")
	return &DoH{
		endpoint: endpoint,
		subnet:   subnet,
		client:   cli,
	}
}

func (d *DoH) LookupIP(ctx context.Context, host string, recordType string) ([]string, error) {
	// endpoints answer with application/dns-json, force the JSON decode
	req := d.client.R().SetContext(ctx).SetResult(&dohResponse{}).
		ForceContentType("application/json").
		SetQueryParam("name", host).
		SetQueryParam("type", recordType)
	if d.subnet != "" {
		req.SetQueryParam("edns_client_subnet", d.subnet)
	}

	resp, err := req.Get(d.endpoint)
	if err != nil {
		return nil, &ResolutionError{Host: host, Err: err}
	}
	if resp.IsError() {
		return nil, &ResolutionError{Host: host, Err: &StatusError{Code: resp.StatusCode(), Body: resp.String()}}
	}

	result := resp.Result().(*dohResponse)
	var ips []string
	for i := range result.Answer {
		// answers carry the CNAME chain too, keep only the asked type
		if result.Answer[i].Type == recordTypeCode[recordType] {
			ips = append(ips, result.Answer[i].Data)
		}
	}
	if len(ips) == 0 {
		return nil, &ResolutionError{Host: host}
	}
	return ips, nil
}

// StatusError is a non-2xx answer from a DoH endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
