package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/spf13/viper"
)

const defaultSourceHostname = "a.netlify.app"

var (
	viperOnce sync.Once
	v         *viper.Viper
)

func GetConfig() *viper.Viper {
	viperOnce.Do(func() {
		v = viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/" + AppName)
		v.AddConfigPath("$HOME/." + AppName)

		// config file is optional, environment variables can carry a full setup
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				log.Panic(err)
			}
		}
	})

	return v
}

// FillDefaults completes a config from environment variables. The service can
// run without any config file when CLOUDFLARE_API_TOKEN and TARGET_DOMAIN are
// set.
func (c *Config) FillDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Interval == 0 {
		c.Interval = 3600
	}
	if c.Timeout == 0 {
		c.Timeout = 10
	}

	if c.Resolver == nil {
		c.Resolver = &Resolver{Type: "system"}
	}
	if c.Resolver.Type == "" {
		c.Resolver.Type = "system"
	}

	if c.Provider == nil {
		c.Provider = &Provider{Name: "cloudflare"}
	}
	if c.Provider.Name == "" {
		c.Provider.Name = "cloudflare"
	}
	if c.Provider.Config == nil {
		c.Provider.Config = make(map[string]string)
	}
	if token := os.Getenv("CLOUDFLARE_API_TOKEN"); token != "" {
		if _, ok := c.Provider.Config["cloudflare_api_token"]; !ok {
			c.Provider.Config["cloudflare_api_token"] = token
		}
	}
	if c.Provider.ZoneID == "" {
		c.Provider.ZoneID = os.Getenv("CLOUDFLARE_ZONE_ID")
	}

	if len(c.Jobs) == 0 {
		if domain := os.Getenv("TARGET_DOMAIN"); domain != "" {
			source := os.Getenv("SOURCE_HOSTNAME")
			if source == "" {
				source = defaultSourceHostname
			}
			c.Jobs = append(c.Jobs, &Job{
				Domain:     domain,
				RecordType: "A",
				Sources:    []string{source},
			})
		}
	}
	for i := range c.Jobs {
		if c.Jobs[i].RecordType == "" {
			c.Jobs[i].RecordType = "A"
		}
		c.Jobs[i].RecordType = strings.ToUpper(c.Jobs[i].RecordType)
	}
}
