package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 1200.0, cfg.Params.ATRThreshold)
	assert.Equal(t, 10, cfg.Params.Bollinger.Window)
	assert.Equal(t, 14, cfg.Params.ATR.Period)
	assert.Equal(t, StopLossFirst, cfg.Params.TieBreak)
	assert.Equal(t, 1, cfg.Gateway.Leverage)
	assert.NoError(t, cfg.Validate())
}

func TestKAMASmoothingConstants(t *testing.T) {
	k := DefaultParams().KAMA
	assert.InDelta(t, 2.0/5.0, k.FastSC(), 1e-12)
	assert.InDelta(t, 2.0/31.0, k.SlowSC(), 1e-12)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mut    func(c *Config)
		errMsg string
	}{
		{
			name: "valid config",
			mut:  func(c *Config) {},
		},
		{
			name:   "zero bollinger window",
			mut:    func(c *Config) { c.Params.Bollinger.Window = 0 },
			errMsg: "bollinger.window must be positive",
		},
		{
			name:   "quantile out of range",
			mut:    func(c *Config) { c.Params.TSI.UpperQuantile = 1.5 },
			errMsg: "tsi.upper_quantile must be between 0 and 1",
		},
		{
			name:   "kama fast not below slow",
			mut:    func(c *Config) { c.Params.KAMA.Fast = 30 },
			errMsg: "kama.fast must be less than kama.slow",
		},
		{
			name:   "long stop above entry",
			mut:    func(c *Config) { c.Params.HighVol.LongSL = 1.01 },
			errMsg: "high_vol: long targets",
		},
		{
			name:   "short target above entry",
			mut:    func(c *Config) { c.Params.LowVol.ShortTP = 1.01 },
			errMsg: "low_vol: short targets",
		},
		{
			name:   "unknown tie break",
			mut:    func(c *Config) { c.Params.TieBreak = "coin_flip" },
			errMsg: "tie_break must be",
		},
		{
			name:   "missing results file",
			mut:    func(c *Config) { c.Output.ResultsFile = "" },
			errMsg: "output.results_file is required",
		},
		{
			name:   "csv journal without file",
			mut:    func(c *Config) { c.Journal = JournalConfig{Type: "csv"} },
			errMsg: "journal trades_file and runs_file required",
		},
		{
			name:   "csv journal without runs file",
			mut:    func(c *Config) { c.Journal = JournalConfig{Type: "csv", TradesFile: "t.csv"} },
			errMsg: "journal trades_file and runs_file required",
		},
		{
			name:   "sqlite journal without path",
			mut:    func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} },
			errMsg: "journal db_path required",
		},
		{
			name:   "bad journal type",
			mut:    func(c *Config) { c.Journal.Type = "parquet" },
			errMsg: "journal.type must be",
		},
		{
			name:   "gateway enabled without url",
			mut:    func(c *Config) { c.Gateway.Enabled = true; c.Gateway.AccountID = "acct" },
			errMsg: "gateway.url required",
		},
		{
			name:   "gateway enabled without account",
			mut:    func(c *Config) { c.Gateway.Enabled = true; c.Gateway.URL = "http://localhost" },
			errMsg: "gateway.account_id required",
		},
		{
			name:   "bad timeout",
			mut:    func(c *Config) { c.Gateway.Timeout = "soon" },
			errMsg: "gateway.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Params.ATRThreshold = 900
			cfg.Params.TieBreak = TakeProfitFirst
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg.Params, loaded.Params)
			assert.Equal(t, cfg.Journal, loaded.Journal)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "params:\n  atr_threshold: 500\noutput:\n  results_file: out.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Params.ATRThreshold)
	assert.Equal(t, "out.csv", cfg.Output.ResultsFile)
	assert.Equal(t, 14, cfg.Params.KAMA.Period)
	assert.Equal(t, 1.05, cfg.Params.HighVol.LongTP)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv(EnvGatewayURL, "http://gateway.local")
	t.Setenv(EnvGatewayToken, "secret")
	t.Setenv(EnvAccountID, "team84")
	t.Setenv(EnvLeverage, "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.local", cfg.Gateway.URL)
	assert.Equal(t, "secret", cfg.Gateway.Token)
	assert.Equal(t, "team84", cfg.Gateway.AccountID)
	assert.Equal(t, 3, cfg.Gateway.Leverage)
}

func TestLoadRejectsBadLeverageEnv(t *testing.T) {
	t.Setenv(EnvLeverage, "lots")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadDotenv(filepath.Join(dir, "missing.env")), "missing file is optional")

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("REGIME-LEVERAGE=3\n"), 0644))
	err := loadDotenv(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.env")
}

func TestGatewayParseTimeout(t *testing.T) {
	tests := []struct {
		timeout  string
		expected string
		wantErr  bool
	}{
		{"1h", "1h0m0s", false},
		{"30s", "30s", false},
		{"", "0s", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			g := GatewayConfig{Timeout: tt.timeout}
			d, err := g.ParseTimeout()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}
