package config

type Config struct {
	LogLevel string    `yaml:"LogLevel"`
	Interval int       `yaml:"Interval"`
	Timeout  int       `yaml:"Timeout"`
	Resolver *Resolver `yaml:"Resolver"`
	Probe    *Probe    `yaml:"Probe"`
	Provider *Provider `yaml:"Provider"`
	Notify   *Notify   `yaml:"Notify"`
	Jobs     []*Job    `yaml:"Jobs"`
}

type Resolver struct {
	Type             string `yaml:"Type"`
	Nameserver       string `yaml:"Nameserver"`
	EDNSClientSubnet string `yaml:"EDNSClientSubnet"`
}

type Probe struct {
	Enable        bool   `yaml:"Enable"`
	Port          int    `yaml:"Port"`
	Path          string `yaml:"Path"`
	Host          string `yaml:"Host"`
	TopN          int    `yaml:"TopN"`
	Concurrent    int    `yaml:"Concurrent"`
	AcceptedCodes []int  `yaml:"AcceptedCodes"`
}

type Provider struct {
	Name   string            `yaml:"Name"`
	ZoneID string            `yaml:"ZoneID"`
	Config map[string]string `yaml:"Config"`
}

type Notify struct {
	Enable   bool              `yaml:"Enable"`
	Provider string            `yaml:"Provider"`
	Config   map[string]string `yaml:"Config"`
}

type Job struct {
	Domain     string   `yaml:"Domain"`
	RecordType string   `yaml:"RecordType"`
	Sources    []string `yaml:"Sources"`
}
