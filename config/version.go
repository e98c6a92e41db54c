package config

import (
	"fmt"
)

var (
	version = "dev"
	AppName = "DNSSync"
	intro   = "A DNS sync service that keeps provider records pointed at a source hostname."
	date    = "unknown"
)

func ShowVersion() {
	fmt.Printf("%s %s, built at %s\n%s\n", AppName, version, date, intro)
}
