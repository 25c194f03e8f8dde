package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/flagx"
)

func parseFlags(cfg *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-f", "-s", "-q", "-x", "-n", "-m", "-l", "-t", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.SQLitePath, "f", cfg.SQLitePath, "sqlite database file")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "access token signing secret")
	fs.StringVar(&cfg.AMQPURL, "q", cfg.AMQPURL, "AMQP URL for auth events")
	fs.StringVar(&cfg.AMQPExchange, "x", cfg.AMQPExchange, "AMQP exchange")
	fs.StringVar(&cfg.AMQPQueue, "n", cfg.AMQPQueue, "AMQP queue")
	fs.BoolVar(&cfg.DemoMode, "m", cfg.DemoMode, "start in demo mode")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	loadTimeout := fs.Int("t", int(cfg.LoadTimeout.Seconds()), "ledger load timeout (in seconds)")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LoadTimeout = time.Duration(*loadTimeout) * time.Second
}
