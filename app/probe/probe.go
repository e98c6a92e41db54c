package probe

import (
	"crypto/tls"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"

	"github.com/thank243/dnsSync/config"
	"github.com/thank243/dnsSync/helper"
)

const defaultUserAgent = "Mozilla/5.0 (Linux; Android 16; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36"

type Result struct {
	IP      string
	Status  int
	Latency time.Duration
}

// Prober ranks candidate addresses by probing them over HTTPS with a forced
// Host header, keeping only accepted status codes and ordering by
// (status, latency).
type Prober struct {
	port       int
	path       string
	host       string
	topN       int
	concurrent int
	accepted   map[int]bool
	client     *http.Client
}

func New(c *config.Probe, timeout time.Duration) *Prober {
	p := &Prober{
		port:       c.Port,
		path:       c.Path,
		host:       c.Host,
		topN:       c.TopN,
		concurrent: c.Concurrent,
		accepted:   make(map[int]bool),
	}
	if p.port == 0 {
		p.port = 443
	}
	if p.path == "" {
		p.path = "/"
	}
	if p.topN == 0 {
		p.topN = 10
	}
	if p.concurrent == 0 {
		p.concurrent = 20
	}
	for i := range c.AcceptedCodes {
		p.accepted[c.AcceptedCodes[i]] = true
	}
	if len(p.accepted) == 0 {
		p.accepted[200] = true
		p.accepted[404] = true
	}

	p.client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			// certificates never match a bare IP, the Host header carries the name
			TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
			DisableKeepAlives: true,
		},
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return p
}

// Rank probes every candidate and returns the accepted ones best-first,
// truncated to topN. The host overrides the configured Host header when the
// config leaves it empty.
func (p *Prober) Rank(ips []string, host string) []Result {
	if p.host != "" {
		host = p.host
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
	)

	pool, err := ants.NewPoolWithFunc(p.concurrent, func(arg interface{}) {
		defer wg.Done()
		ip := arg.(string)
		r := p.probe(ip, host)
		log.Debugf("[probe] %s status=%d latency=%dms", ip, r.Status, r.Latency.Milliseconds())

		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	})
	if err != nil {
		log.Error(err)
		return nil
	}
	defer pool.Release()

	for i := range ips {
		wg.Add(1)
		if err := pool.Invoke(ips[i]); err != nil {
			wg.Done()
			log.Error(err)
		}
	}
	wg.Wait()

	var accepted []Result
	for i := range results {
		if p.accepted[results[i].Status] {
			accepted = append(accepted, results[i])
		}
	}
	sort.Slice(accepted, func(i, j int) bool {
		if accepted[i].Status != accepted[j].Status {
			return accepted[i].Status < accepted[j].Status
		}
		return accepted[i].Latency < accepted[j].Latency
	})

	if len(accepted) > p.topN {
		accepted = accepted[:p.topN]
	}
	return accepted
}

func (p *Prober) probe(ip string, host string) Result {
	req, err := http.NewRequest("GET", helper.FormatHTTPSURL(ip, p.port, p.path), nil)
	if err != nil {
		return Result{IP: ip}
	}
	req.Host = host
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return Result{IP: ip}
	}
	resp.Body.Close()

	return Result{IP: ip, Status: resp.StatusCode, Latency: time.Since(start)}
}
