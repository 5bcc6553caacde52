package config

import (
	"github.com/caarlos0/env/v11"
)

// DefaultDataURL points at the published health-data.json on the site.
const DefaultDataURL = "https://lucov.github.io/health-data.json"

type Config struct {
	// DataURL is where the presenter fetches the snapshot from. A local
	// file path works too when it does not look like a URL.
	DataURL string `env:"HEALTHCARD_DATA_URL" envDefault:"https://lucov.github.io/health-data.json"`

	// MaxAgeHours is the freshness window for the stale gate.
	MaxAgeHours int `env:"HEALTHCARD_MAX_AGE_HOURS" envDefault:"48"`

	Serve  ServeConfig
	Google GoogleConfig
}

type ServeConfig struct {
	Port    int    `env:"HEALTHCARD_PORT" envDefault:"8080"`
	SiteDir string `env:"HEALTHCARD_SITE_DIR" envDefault:"."`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
