package controller

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/thank243/dnsSync/app/probe"
	"github.com/thank243/dnsSync/app/resolver"
	"github.com/thank243/dnsSync/app/syncer"
	"github.com/thank243/dnsSync/common/notify"
	"github.com/thank243/dnsSync/common/notify/pushplus"
	"github.com/thank243/dnsSync/common/notify/telegram"
	"github.com/thank243/dnsSync/common/provider"
	"github.com/thank243/dnsSync/common/provider/cloudflare"
	"github.com/thank243/dnsSync/common/provider/route53"
)

func (s *Service) buildJobs() []*syncer.Job {
	// init provider client
	var (
		cli provider.Client
		err error
	)
	switch s.conf.Provider.Name {
	case "cloudflare":
		cli, err = cloudflare.New(s.conf.Provider.Config)
	case "route53":
		cli, err = route53.New(s.conf.Provider.Config)
	default:
		log.Panicf("unknown provider: %s", s.conf.Provider.Name)
	}
	if err != nil {
		log.Panic(err)
	}

	// init resolver
	res, err := resolver.New(s.conf.Resolver, s.timeout)
	if err != nil {
		log.Panic(err)
	}

	// init prober
	var prober *probe.Prober
	if s.conf.Probe != nil && s.conf.Probe.Enable {
		prober = probe.New(s.conf.Probe, s.timeout)
	}

	var jobs []*syncer.Job
	for i := range s.conf.Jobs {
		j := s.conf.Jobs[i]
		jobs = append(jobs, &syncer.Job{
			Domain:     j.Domain,
			RecordType: j.RecordType,
			Sources:    j.Sources,
			ZoneID:     s.conf.Provider.ZoneID,
			Resolver:   res,
			Provider:   cli,
			Prober:     prober,
		})
	}
	return jobs
}

func (s *Service) buildNotifier() notify.Notify {
	if s.conf.Notify == nil || !s.conf.Notify.Enable {
		return nil
	}

	switch s.conf.Notify.Provider {
	case "pushplus":
		return &pushplus.PushPlus{Token: s.conf.Notify.Config["pushplus_token"]}
	case "telegram":
		chatID, err := strconv.ParseInt(s.conf.Notify.Config["telegram_chatid"], 10, 64)
		if err != nil {
			log.Panicf("invalid telegram_chatid: %v", err)
		}
		return &telegram.Telegram{
			ChatID: chatID,
			Token:  s.conf.Notify.Config["telegram_token"],
		}
	}
	return nil
}
