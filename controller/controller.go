package controller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/thank243/dnsSync/app/syncer"
	"github.com/thank243/dnsSync/config"
)

func New(c *config.Config) *Service {
	c.FillDefaults()

	s := &Service{
		conf:    c,
		cron:    cron.New(),
		timeout: time.Duration(c.Timeout) * time.Second,
	}

	// init log level
	if l, err := log.ParseLevel(c.LogLevel); err != nil {
		log.Panic(err)
	} else {
		log.SetLevel(l)
	}

	s.jobs = s.buildJobs()
	s.notifier = s.buildNotifier()

	return s
}

func (s *Service) Start() {
	// On init start, do once check
	defer s.task()
	s.running = true

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.conf.Interval), s.task); err != nil {
		log.Panic(err)
	}

	s.cron.Start()
	log.Warnln(config.AppName, "Started")
}

func (s *Service) task() {
	if s.cronRunning.Load() {
		return
	}

	s.cronRunning.Store(true)
	defer s.cronRunning.Store(false)

	// check local network connection
	resp, err := http.Get("http://www.gstatic.com/generate_204")
	if err != nil {
		log.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != 204 {
		body, _ := io.ReadAll(resp.Body)
		log.Error(string(body))
		return
	}

	if err := s.RunOnce(); err != nil {
		log.Error(err)
	}
}

// RunOnce runs every job a single time. Jobs are independent attempts, the
// first failure is reported after all jobs had their turn.
func (s *Service) RunOnce() error {
	var firstErr error
	for i := range s.jobs {
		job := s.jobs[i]

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		res, err := job.Run(ctx)
		cancel()

		if err != nil {
			log.Errorf("[%s] %v", job.Domain, err)
			s.pushMessage(job.Domain, fmt.Sprintf("sync failed: %v", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		switch res.Outcome {
		case syncer.Updated:
			log.Infof("[%s] record updated: %s -> %s", job.Domain, res.Old, res.New)
			s.pushMessage(job.Domain, fmt.Sprintf("record updated: %s -> %s", res.Old, res.New))
		default:
			log.Infof("[%s] record unchanged: %s", job.Domain, res.New)
		}
	}
	return firstErr
}

func (s *Service) pushMessage(title string, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Webhook(title, content); err != nil {
		log.Error(err)
	} else {
		log.Infof("[%s] push message success", title)
	}
}

func (s *Service) Close() {
	log.Infoln(config.AppName, "Closing..")
	entry := s.cron.Entries()
	for i := range entry {
		s.cron.Remove(entry[i].ID)
	}
	s.cron.Stop()
	s.running = false
}
