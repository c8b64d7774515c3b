package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobsift pipelines.
type Config struct {
	Sources   []SourceConfig
	Rules     RuleSet
	Limits    LimitsConfig
	Sink      SinkConfig
	Resolve   ResolveConfig
	UserAgent string
}

// SourceConfig describes a single employer board to collect from.
type SourceConfig struct {
	Company string `yaml:"company"` // employer slug on the platform
	Kind    string `yaml:"kind"`    // "greenhouse" or "lever"
	Enabled bool   `yaml:"enabled"`
}

// RuleSet holds the title taxonomy and scoring vocabulary. It is loaded
// once and never mutated; every component reads the same copy.
type RuleSet struct {
	Include            []string // whole-word title patterns that admit a posting
	Exclude            []string // whole-word title patterns that veto a posting
	Skills             []string // substrings counted by the fit scorer
	PreferredLocations []string // location patterns worth a score bonus
}

// LimitsConfig bounds concurrency, timeouts and batch sizes.
type LimitsConfig struct {
	MaxConcurrent  int           // in-flight source/page fetches
	FetchTimeout   time.Duration // per source-listing request
	ResolveTimeout time.Duration // per posting-page request
	SinkTimeout    time.Duration // per sink delivery
	MinScore       int           // rows below this never ship
	MaxRows        int           // batch cap after ranking
	MaxTargets     int           // enrichment targets per run
	ExcerptLimit   int           // description excerpt length in bytes
	HostRPS        float64       // resolve fetches per second per host
	HostBurst      int
}

// SinkConfig points at the tabular-append webhook.
type SinkConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// ResolveConfig locates the enrichment target table: an http(s) URL or a
// local path to a CSV export, or a .db/.sqlite snapshot written by collect.
type ResolveConfig struct {
	Targets string `yaml:"targets"`
}

// Default role taxonomy; listed by `jobsift rules`.
var (
	defaultInclude = []string{
		"financial analyst", "capital markets analyst", "investment analyst",
		"portfolio analyst", "portfolio coordinator", "credit analyst",
		"business intelligence analyst", "bi analyst", "data analyst",
		"reporting analyst", "data operations analyst", "real estate analyst",
		"asset management analyst", "underwriting analyst", "risk analyst",
		"fp&a analyst", "corporate finance analyst", "treasury analyst",
		"strategy analyst", "operations analyst",
	}
	defaultExclude = []string{
		"sales", "business development", "bd[r]?", "sdr", "account executive",
		"customer success", "marketing", "retail", "teller", "loan officer",
		"originator", "recruiter", "admissions",
	}
	defaultSkills = []string{
		"excel", "sql", "python", "model", "underwriting", "valuation",
		"capital markets", "fp&a", "dashboard", "automation", "apps script",
		"vba",
	}
	defaultPreferredLocations = []string{
		"remote", "united states", "usa", "anywhere", "california",
		"los angeles",
	}
)

const (
	defaultMaxConcurrent  = 60
	defaultFetchTimeout   = 25 * time.Second
	defaultResolveTimeout = 30 * time.Second
	defaultSinkTimeout    = 30 * time.Second
	defaultMinScore       = 3
	defaultMaxRows        = 1000
	defaultMaxTargets     = 50
	defaultExcerptLimit   = 2000
	defaultHostRPS        = 2
	defaultHostBurst      = 4
	defaultUserAgent      = "Mozilla/5.0 (JobSift/1.0)"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	Sources   []SourceConfig `yaml:"sources"`
	Rules     rawRuleSet     `yaml:"rules"`
	Limits    rawLimits      `yaml:"limits"`
	Sink      SinkConfig     `yaml:"sink"`
	Resolve   ResolveConfig  `yaml:"resolve"`
	UserAgent string         `yaml:"user_agent"`
}

type rawRuleSet struct {
	Include            []string `yaml:"include"`
	Exclude            []string `yaml:"exclude"`
	Skills             []string `yaml:"skills"`
	PreferredLocations []string `yaml:"preferred_locations"`
}

type rawLimits struct {
	MaxConcurrent  int     `yaml:"max_concurrent"`
	FetchTimeout   string  `yaml:"fetch_timeout"`
	ResolveTimeout string  `yaml:"resolve_timeout"`
	SinkTimeout    string  `yaml:"sink_timeout"`
	MinScore       int     `yaml:"min_score"`
	MaxRows        int     `yaml:"max_rows"`
	MaxTargets     int     `yaml:"max_targets"`
	ExcerptLimit   int     `yaml:"excerpt_limit"`
	HostRPS        float64 `yaml:"host_rps"`
	HostBurst      int     `yaml:"host_burst"`
}

// Load reads and parses the YAML config file at path, fills defaults,
// validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	fetchTimeout := defaultFetchTimeout
	if raw.Limits.FetchTimeout != "" {
		fetchTimeout, err = time.ParseDuration(raw.Limits.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse limits.fetch_timeout %q: %w", raw.Limits.FetchTimeout, err)
		}
	}

	resolveTimeout := defaultResolveTimeout
	if raw.Limits.ResolveTimeout != "" {
		resolveTimeout, err = time.ParseDuration(raw.Limits.ResolveTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse limits.resolve_timeout %q: %w", raw.Limits.ResolveTimeout, err)
		}
	}

	sinkTimeout := defaultSinkTimeout
	if raw.Limits.SinkTimeout != "" {
		sinkTimeout, err = time.ParseDuration(raw.Limits.SinkTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse limits.sink_timeout %q: %w", raw.Limits.SinkTimeout, err)
		}
	}

	cfg := &Config{
		Sources: raw.Sources,
		Rules: RuleSet{
			Include:            orDefault(raw.Rules.Include, defaultInclude),
			Exclude:            orDefault(raw.Rules.Exclude, defaultExclude),
			Skills:             orDefault(raw.Rules.Skills, defaultSkills),
			PreferredLocations: orDefault(raw.Rules.PreferredLocations, defaultPreferredLocations),
		},
		Limits: LimitsConfig{
			MaxConcurrent:  orDefaultInt(raw.Limits.MaxConcurrent, defaultMaxConcurrent),
			FetchTimeout:   fetchTimeout,
			ResolveTimeout: resolveTimeout,
			SinkTimeout:    sinkTimeout,
			MinScore:       orDefaultInt(raw.Limits.MinScore, defaultMinScore),
			MaxRows:        orDefaultInt(raw.Limits.MaxRows, defaultMaxRows),
			MaxTargets:     orDefaultInt(raw.Limits.MaxTargets, defaultMaxTargets),
			ExcerptLimit:   orDefaultInt(raw.Limits.ExcerptLimit, defaultExcerptLimit),
			HostRPS:        raw.Limits.HostRPS,
			HostBurst:      orDefaultInt(raw.Limits.HostBurst, defaultHostBurst),
		},
		Sink:      raw.Sink,
		Resolve:   raw.Resolve,
		UserAgent: raw.UserAgent,
	}
	if cfg.Limits.HostRPS == 0 {
		cfg.Limits.HostRPS = defaultHostRPS
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func validate(cfg *Config) error {
	for i, s := range cfg.Sources {
		if s.Company == "" {
			return fmt.Errorf("sources[%d].company is required", i)
		}
		switch s.Kind {
		case "greenhouse", "lever":
		default:
			return fmt.Errorf("sources[%d].kind must be \"greenhouse\" or \"lever\", got %q", i, s.Kind)
		}
	}

	if cfg.Limits.MaxConcurrent <= 0 {
		return fmt.Errorf("limits.max_concurrent must be positive, got %d", cfg.Limits.MaxConcurrent)
	}
	if cfg.Limits.FetchTimeout <= 0 {
		return fmt.Errorf("limits.fetch_timeout must be positive, got %v", cfg.Limits.FetchTimeout)
	}
	if cfg.Limits.ResolveTimeout <= 0 {
		return fmt.Errorf("limits.resolve_timeout must be positive, got %v", cfg.Limits.ResolveTimeout)
	}
	if cfg.Limits.SinkTimeout <= 0 {
		return fmt.Errorf("limits.sink_timeout must be positive, got %v", cfg.Limits.SinkTimeout)
	}
	if cfg.Limits.MaxRows <= 0 {
		return fmt.Errorf("limits.max_rows must be positive, got %d", cfg.Limits.MaxRows)
	}
	if cfg.Limits.MaxTargets <= 0 {
		return fmt.Errorf("limits.max_targets must be positive, got %d", cfg.Limits.MaxTargets)
	}
	if cfg.Limits.ExcerptLimit <= 0 {
		return fmt.Errorf("limits.excerpt_limit must be positive, got %d", cfg.Limits.ExcerptLimit)
	}
	if cfg.Limits.HostRPS <= 0 {
		return fmt.Errorf("limits.host_rps must be positive, got %v", cfg.Limits.HostRPS)
	}

	return nil
}

// ValidateCollect checks the keys the ingestion pipeline cannot run without.
// Called before any fetch work begins.
func (c *Config) ValidateCollect() error {
	enabled := 0
	for _, s := range c.Sources {
		if s.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}
	if c.Sink.Endpoint == "" {
		return fmt.Errorf("sink.endpoint is required")
	}
	return nil
}

// ValidateResolve checks the keys the resolution pipeline cannot run without.
func (c *Config) ValidateResolve() error {
	if c.Resolve.Targets == "" {
		return fmt.Errorf("resolve.targets is required")
	}
	if c.Sink.Endpoint == "" {
		return fmt.Errorf("sink.endpoint is required")
	}
	return nil
}
