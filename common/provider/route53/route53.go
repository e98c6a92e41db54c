package route53

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/route53"

	"github.com/thank243/dnsSync/common/provider"
	"github.com/thank243/dnsSync/helper"
)

// Route53 implements provider.Client on AWS Route 53.
type Route53 struct {
	svc *route53.Route53
}

func New(c map[string]string) (*Route53, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			c["route53_access_key_id"],
			c["route53_secret_access_key"],
			"",
		),
		Region: aws.String("us-east-1"),
	})
	if err != nil {
		return nil, err
	}

	return &Route53{svc: route53.New(sess)}, nil
}

func (r *Route53) ZoneID(ctx context.Context, domain string) (string, error) {
	root := helper.RootDomain(domain)

	out, err := r.svc.ListHostedZonesByNameWithContext(ctx, &route53.ListHostedZonesByNameInput{
		DNSName: aws.String(root),
	})
	if err != nil {
		return "", wrapErr("list zones", err)
	}

	for i := range out.HostedZones {
		if strings.TrimSuffix(aws.StringValue(out.HostedZones[i].Name), ".") == root {
			// zone IDs come back as "/hostedzone/XXXX"
			return strings.TrimPrefix(aws.StringValue(out.HostedZones[i].Id), "/hostedzone/"), nil
		}
	}
	return "", &provider.ZoneLookupError{Domain: domain}
}

func (r *Route53) GetRecord(ctx context.Context, zoneID string, name string, recordType string) (*provider.Record, error) {
	out, err := r.svc.ListResourceRecordSetsWithContext(ctx, &route53.ListResourceRecordSetsInput{
		HostedZoneId:    aws.String(zoneID),
		StartRecordName: aws.String(name),
		StartRecordType: aws.String(recordType),
		MaxItems:        aws.String("1"),
	})
	if err != nil {
		return nil, wrapErr("list records", err)
	}

	for i := range out.ResourceRecordSets {
		rrs := out.ResourceRecordSets[i]
		if strings.TrimSuffix(aws.StringValue(rrs.Name), ".") != name ||
			aws.StringValue(rrs.Type) != recordType ||
			len(rrs.ResourceRecords) == 0 {
			continue
		}
		return &provider.Record{
			// Route 53 has no per-record handle, records are addressed by name+type
			ID:      name,
			Name:    name,
			Type:    recordType,
			Content: aws.StringValue(rrs.ResourceRecords[0].Value),
			TTL:     aws.Int64Value(rrs.TTL),
		}, nil
	}
	return nil, &provider.RecordNotFoundError{Name: name, Type: recordType}
}

func (r *Route53) UpdateRecord(ctx context.Context, zoneID string, record *provider.Record, value string) error {
	ttl := record.TTL
	if ttl == 0 {
		ttl = 300
	}

	_, err := r.svc.ChangeResourceRecordSetsWithContext(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &route53.ChangeBatch{
			Changes: []*route53.Change{{
				Action: aws.String(route53.ChangeActionUpsert),
				ResourceRecordSet: &route53.ResourceRecordSet{
					Name: aws.String(record.Name),
					Type: aws.String(record.Type),
					TTL:  aws.Int64(ttl),
					ResourceRecords: []*route53.ResourceRecord{
						{Value: aws.String(value)},
					},
				},
			}},
		},
	})
	if err != nil {
		return wrapErr("update record", err)
	}
	return nil
}

func wrapErr(op string, err error) error {
	if reqErr, ok := err.(awserr.RequestFailure); ok {
		return &provider.ProviderError{Op: op, Status: reqErr.StatusCode(), Body: reqErr.Message(), Err: err}
	}
	return &provider.ProviderError{Op: op, Err: err}
}
