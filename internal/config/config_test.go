package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"HorizonAge", cfg.HorizonAge, 90},
		{"Sect", cfg.Sect, 2},
		{"Format", cfg.Format, FormatText},
		{"Lang", cfg.Lang, "zh"},
		{"Timezone", cfg.Timezone, "Asia/Shanghai"},
		{"ArchivePath", cfg.ArchivePath, DefaultArchivePath()},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"Workers", cfg.Workers, 4},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "horizon_age",
			envKey: "BAZI_HORIZON_AGE",
			envVal: "100",
			field:  func(c Config) any { return c.HorizonAge },
			want:   100,
		},
		{
			name:   "sect",
			envKey: "BAZI_SECT",
			envVal: "1",
			field:  func(c Config) any { return c.Sect },
			want:   1,
		},
		{
			name:   "format",
			envKey: "BAZI_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Format },
			want:   FormatJSON,
		},
		{
			name:   "lang",
			envKey: "BAZI_LANG",
			envVal: "en",
			field:  func(c Config) any { return c.Lang },
			want:   "en",
		},
		{
			name:   "archive_path",
			envKey: "BAZI_ARCHIVE_PATH",
			envVal: "/tmp/charts.db",
			field:  func(c Config) any { return c.ArchivePath },
			want:   "/tmp/charts.db",
		},
		{
			name:   "verbose",
			envKey: "BAZI_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so BAZI_* env vars map to config keys.
			viper.SetEnvPrefix("BAZI")
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".bazi.toml")
	content := "horizon_age = 80\nlang = \"en\"\ntimezone = \"UTC\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.HorizonAge != 80 || cfg.Lang != "en" || cfg.Timezone != "UTC" {
		t.Errorf("config file not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{HorizonAge: 90, Sect: 2, Format: FormatText, Timezone: "UTC", Workers: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate(valid): %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.HorizonAge = 0 }},
		{"bad sect", func(c *Config) { c.Sect = 3 }},
		{"bad format", func(c *Config) { c.Format = "xml" }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	cfg := Config{Timezone: "Asia/Shanghai"}
	if got := cfg.Location().String(); got != "Asia/Shanghai" {
		t.Errorf("Location() = %s, want Asia/Shanghai", got)
	}
	cfg.Timezone = "nowhere"
	if cfg.Location() != time.UTC {
		t.Error("invalid timezone should fall back to UTC")
	}
}
