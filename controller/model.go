package controller

import (
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thank243/dnsSync/app/syncer"
	"github.com/thank243/dnsSync/common/notify"
	"github.com/thank243/dnsSync/config"
)

type Service struct {
	conf        *config.Config
	cron        *cron.Cron
	jobs        []*syncer.Job
	notifier    notify.Notify
	timeout     time.Duration
	running     bool
	cronRunning atomic.Bool
}
