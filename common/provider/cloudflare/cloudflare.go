package cloudflare

import (
	"context"
	"strings"

	"github.com/cloudflare/cloudflare-go"

	"github.com/thank243/dnsSync/common/provider"
)

// Cloudflare implements provider.Client on the Cloudflare v4 API.
type Cloudflare struct {
	client *cloudflare.API
}

func New(c map[string]string, opts ...cloudflare.Option) (*Cloudflare, error) {
	cf := new(Cloudflare)

	var (
		client *cloudflare.API
		err    error
	)
	if token := c["cloudflare_api_token"]; token != "" {
		client, err = cloudflare.NewWithAPIToken(token, opts...)
	} else {
		client, err = cloudflare.New(c["cloudflare_api_key"], c["cloudflare_email"], opts...)
	}
	if err != nil {
		return nil, err
	}
	cf.client = client

	return cf, nil
}

// ZoneID picks the longest zone name that is a suffix of domain, so a record
// in a delegated sub-zone resolves to the sub-zone and not its parent.
func (cf *Cloudflare) ZoneID(ctx context.Context, domain string) (string, error) {
	zones, err := cf.client.ListZones(ctx)
	if err != nil {
		return "", &provider.ProviderError{Op: "list zones", Err: err}
	}

	zoneID, best := "", 0
	for i := range zones {
		if strings.HasSuffix(domain, zones[i].Name) && len(zones[i].Name) > best {
			zoneID, best = zones[i].ID, len(zones[i].Name)
		}
	}
	if zoneID == "" {
		return "", &provider.ZoneLookupError{Domain: domain}
	}
	return zoneID, nil
}

func (cf *Cloudflare) GetRecord(ctx context.Context, zoneID string, name string, recordType string) (*provider.Record, error) {
	records, _, err := cf.client.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(zoneID), cloudflare.ListDNSRecordsParams{
		Type: recordType,
		Name: name,
	})
	if err != nil {
		return nil, &provider.ProviderError{Op: "list records", Err: err}
	}
	if len(records) == 0 {
		return nil, &provider.RecordNotFoundError{Name: name, Type: recordType}
	}

	r := records[0]
	return &provider.Record{
		ID:      r.ID,
		Name:    r.Name,
		Type:    r.Type,
		Content: r.Content,
	}, nil
}

func (cf *Cloudflare) UpdateRecord(ctx context.Context, zoneID string, record *provider.Record, value string) error {
	_, err := cf.client.UpdateDNSRecord(ctx, cloudflare.ZoneIdentifier(zoneID), cloudflare.UpdateDNSRecordParams{
		Type:    record.Type,
		ID:      record.ID,
		Content: value,
	})
	if err != nil {
		return &provider.ProviderError{Op: "update record", Err: err}
	}
	return nil
}
