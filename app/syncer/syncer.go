package syncer

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/thank243/dnsSync/app/probe"
	"github.com/thank243/dnsSync/app/resolver"
	"github.com/thank243/dnsSync/common/provider"
	"github.com/thank243/dnsSync/helper"
)

// Job syncs one provider record with the addresses its source hostnames
// resolve to. A run is linear: resolve, fetch the stored record, compare,
// update only on difference.
type Job struct {
	Domain     string
	RecordType string
	Sources    []string
	ZoneID     string

	Resolver resolver.Resolver
	Provider provider.Client
	Prober   *probe.Prober
}

func (j *Job) Run(ctx context.Context) (*Result, error) {
	addr, err := j.resolve(ctx)
	if err != nil {
		return nil, err
	}

	zoneID := j.ZoneID
	if zoneID == "" {
		zoneID, err = j.Provider.ZoneID(ctx, j.Domain)
		if err != nil {
			return nil, err
		}
		log.Debugf("[%s] discovered zone %s", j.Domain, zoneID)
		// zone assignment does not move between runs
		j.ZoneID = zoneID
	}

	record, err := j.Provider.GetRecord(ctx, zoneID, j.Domain, j.RecordType)
	if err != nil {
		return nil, err
	}

	if record.Content == addr {
		return &Result{Outcome: Unchanged, Old: record.Content, New: addr}, nil
	}

	if err := j.Provider.UpdateRecord(ctx, zoneID, record, addr); err != nil {
		return nil, err
	}
	return &Result{Outcome: Updated, Old: record.Content, New: addr}, nil
}

// resolve pools the addresses of every source hostname and picks the value to
// write: the best probed candidate when probing is on, the first address
// otherwise.
func (j *Job) resolve(ctx context.Context) (string, error) {
	var addrs []string
	seen := make(map[string]bool)
	for i := range j.Sources {
		ips, err := j.Resolver.LookupIP(ctx, j.Sources[i], j.RecordType)
		if err != nil {
			// a dead source must not sink the pool, the run fails only
			// when every source came up empty
			log.Warnf("[%s] %v", j.Domain, err)
			continue
		}
		for ii := range ips {
			if !helper.MatchRecordType(j.RecordType, ips[ii]) || seen[ips[ii]] {
				continue
			}
			seen[ips[ii]] = true
			addrs = append(addrs, ips[ii])
		}
	}
	if len(addrs) == 0 {
		return "", &resolver.ResolutionError{Host: strings.Join(j.Sources, ",")}
	}

	if j.Prober != nil {
		if ranked := j.Prober.Rank(addrs, j.Domain); len(ranked) > 0 {
			return ranked[0].IP, nil
		}
		log.Warnf("[%s] no candidate passed probing, keeping first resolved address", j.Domain)
	}
	return addrs[0], nil
}
