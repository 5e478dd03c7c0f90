package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"LEDGERLENS_LOG_LEVEL",
	"LEDGERLENS_LOG_FORMAT",
	"LEDGERLENS_INPUT_DIRECTORY",
	"LEDGERLENS_OUTPUT_DIRECTORY",
	"LEDGERLENS_OUTPUT_FORMAT",
	"LEDGERLENS_CSV_DELIMITER",
	"LEDGERLENS_ANALYSIS_TOP_SENDERS",
	"LEDGERLENS_WATCH_SETTLE_MS",
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "input", config.Input.Directory)
	assert.Equal(t, "output", config.Output.Directory)
	assert.Equal(t, FormatCSV, config.Output.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, ',', config.Delimiter())
	assert.Equal(t, "2 Jan 2006", config.Parsers.PDF.DateLayout)
	assert.Equal(t, 5, config.Analysis.TopSenders)
	assert.Equal(t, 500, config.Watch.SettleMillis)
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("LEDGERLENS_LOG_LEVEL", "debug")
	t.Setenv("LEDGERLENS_OUTPUT_DIRECTORY", "/tmp/ledger")
	t.Setenv("LEDGERLENS_OUTPUT_FORMAT", "XLSX")
	t.Setenv("LEDGERLENS_CSV_DELIMITER", ";")
	t.Setenv("LEDGERLENS_ANALYSIS_TOP_SENDERS", "3")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "/tmp/ledger", config.Output.Directory)
	assert.Equal(t, FormatXLSX, config.Output.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, 3, config.Analysis.TopSenders)
}

func TestLoadConfig_ConfigFileAndPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)

	configContent := `
log:
  level: "warn"
  format: "json"
output:
  directory: "ledger"
  format: "xlsx"
input:
  directory: "drop"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	t.Setenv("LEDGERLENS_LOG_LEVEL", "error")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level, "env var wins over file")
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "ledger", config.Output.Directory)
	assert.Equal(t, FormatXLSX, config.Output.Format)
	assert.Equal(t, "drop", config.Input.Directory)
}

func TestLoadConfigWithFlags_Precedence(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	t.Setenv("LEDGERLENS_OUTPUT_DIRECTORY", "from-env")
	t.Setenv("LEDGERLENS_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	flags.String("log-level", "", "")
	flags.String("output-format", "", "")
	require.NoError(t, flags.Parse([]string{"--output-dir", "from-flag", "--output-format", "xlsx"}))

	config, err := LoadConfigWithFlags("", flags)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", config.Output.Directory, "flag wins over env var")
	assert.Equal(t, FormatXLSX, config.Output.Format)
	assert.Equal(t, "warn", config.Log.Level, "unset flag leaves env var in place")
	assert.Equal(t, "input", config.Input.Directory)
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	clearTestEnvVars(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"empty output directory", func(c *Config) { c.Output.Directory = " " }, "output.directory must not be empty"},
		{"empty input directory", func(c *Config) { c.Input.Directory = "" }, "input.directory must not be empty"},
		{"invalid output format", func(c *Config) { c.Output.Format = "ods" }, "invalid output format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "ab" }, "CSV delimiter must be a single character"},
		{"empty pdf date layout", func(c *Config) { c.Parsers.PDF.DateLayout = "" }, "parsers.pdf.date_layout"},
		{"top senders out of range", func(c *Config) { c.Analysis.TopSenders = 0 }, "analysis.top_senders must be between 1 and 100"},
		{"negative settle", func(c *Config) { c.Watch.SettleMillis = -1 }, "watch.settle_ms must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_NormalizesFormat(t *testing.T) {
	config := validTestConfig()
	config.Output.Format = "CSV"
	require.NoError(t, validateConfig(config))
	assert.Equal(t, FormatCSV, config.Output.Format)
}

func validTestConfig() *Config {
	config := &Config{}
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.Input.Directory = "input"
	config.Output.Directory = "output"
	config.Output.Format = FormatCSV
	config.CSV.Delimiter = ","
	config.Parsers.PDF.DateLayout = "2 Jan 2006"
	config.Analysis.TopSenders = 5
	config.Watch.SettleMillis = 500
	return config
}
