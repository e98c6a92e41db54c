package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/thank243/dnsSync/config"
	"github.com/thank243/dnsSync/controller"
)

func main() {
	config.ShowVersion()

	printVersion := flag.Bool("version", false, "show version")
	runOnce := flag.Bool("once", false, "run all sync jobs once and exit")
	flag.Parse()
	if *printVersion {
		return
	}

	// init config
	getConfig := config.GetConfig()
	c := new(config.Config)
	if err := getConfig.Unmarshal(c); err != nil {
		log.Panic(err)
	}

	s := controller.New(c)

	// one-shot mode for external schedulers, exit code carries the outcome
	if *runOnce {
		if err := s.RunOnce(); err != nil {
			os.Exit(1)
		}
		return
	}

	// start service
	s.Start()

	// hot reload configure
	lastTime := time.Now()
	getConfig.OnConfigChange(func(e fsnotify.Event) {
		if time.Now().After(lastTime.Add(time.Second * 3)) {
			log.Println("Config file changed:", e.Name)
			if err := getConfig.Unmarshal(c); err != nil {
				log.Panic(err)
			}
			// release server resource
			s.Close()
			s = nil

			// create server
			s = controller.New(c)
			s.Start()
		}
		lastTime = time.Now()
	})
	getConfig.WatchConfig()

	// Running backend
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, os.Kill, syscall.SIGTERM)
	<-osSignals
}
