package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-b", "postgres", "-d", "db", "-f", "file.db", "-s", "secret",
			"-q", "amqp://mq", "-x", "ex", "-n", "queue", "-m=true", "-l", "debug", "-t", "5", "-z", "UTC",
		}, expectPanic: false,
			expected: &Config{
				StorageBackend: "postgres",
				DatabaseDSN:    "db",
				SQLitePath:     "file.db",
				JWTSecret:      "secret",
				AMQPURL:        "amqp://mq",
				AMQPExchange:   "ex",
				AMQPQueue:      "queue",
				DemoMode:       true,
				LogLevel:       "debug",
				LoadTimeout:    5 * time.Second,
				TimeZone:       "UTC",
			}},
		{name: "unknown flags are ignored", args: []string{"cmd", "-c", "conf.json", "-b", "sqlite"}, expectPanic: false,
			expected: &Config{StorageBackend: "sqlite"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
