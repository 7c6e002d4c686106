package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

type Config struct {
	App struct {
		UpdateEveryMin int    `toml:"update_every_min"`
		ReadyPollSec   int    `toml:"ready_poll_sec"`
		LogLevel       string `toml:"log_level"`
	} `toml:"app"`

	CoinGecko struct {
		BaseURL    string `toml:"base_url"`
		APIKey     string `toml:"api_key"`
		TimeoutSec int    `toml:"timeout_sec"`
	} `toml:"coingecko"`

	Discord struct {
		GuildID string            `toml:"guild_id"`
		Tokens  map[string]string `toml:"tokens"` // asset key -> bot token
	} `toml:"discord"`
}

func (c *Config) UpdateEvery() time.Duration {
	return time.Duration(c.App.UpdateEveryMin) * time.Minute
}

func (c *Config) ReadyPoll() time.Duration {
	return time.Duration(c.App.ReadyPollSec) * time.Second
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.CoinGecko.TimeoutSec) * time.Second
}

// Load reads the TOML file, overlays secrets from the environment, applies
// defaults and validates. Env always wins over the file so tokens never have
// to be committed.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.Discord.GuildID = v
	}
	if cfg.Discord.Tokens == nil {
		cfg.Discord.Tokens = make(map[string]string, len(domain.Tracked))
	}
	for _, t := range domain.Tracked {
		env := "DISCORD_TOKEN_" + strings.ToUpper(t.Key)
		if v := os.Getenv(env); v != "" {
			cfg.Discord.Tokens[t.Key] = v
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.UpdateEveryMin <= 0 {
		cfg.App.UpdateEveryMin = 5
	}
	if cfg.App.ReadyPollSec <= 0 {
		cfg.App.ReadyPollSec = 1
	}
	if strings.TrimSpace(cfg.CoinGecko.BaseURL) == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.CoinGecko.TimeoutSec <= 0 {
		cfg.CoinGecko.TimeoutSec = 15
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Discord.GuildID) == "" {
		return errors.New("discord.guild_id is empty")
	}
	for _, t := range domain.Tracked {
		if strings.TrimSpace(cfg.Discord.Tokens[t.Key]) == "" {
			return fmt.Errorf("missing discord token for %q (set discord.tokens.%s or DISCORD_TOKEN_%s)",
				t.Key, t.Key, strings.ToUpper(t.Key))
		}
	}
	return nil
}
