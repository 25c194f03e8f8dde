package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/finanzas/internal/flagx"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "10s" or
// integer nanoseconds. Absent keys leave the current value untouched.
type JsonConfig struct {
	StorageBackend string          `json:"storage_backend"`
	DatabaseDSN    string          `json:"database_dsn"`
	SQLitePath     string          `json:"sqlite_path"`
	JWTSecret      string          `json:"jwt_secret"`
	AMQPURL        string          `json:"amqp_url"`
	AMQPExchange   string          `json:"amqp_exchange"`
	AMQPQueue      string          `json:"amqp_queue"`
	DemoMode       *bool           `json:"demo_mode"`
	LogLevel       string          `json:"log_level"`
	LoadTimeout    *timex.Duration `json:"load_timeout"`
	TimeZone       string          `json:"time_zone"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.StorageBackend, jc.StorageBackend)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.SQLitePath, jc.SQLitePath)
	set(&cfg.JWTSecret, jc.JWTSecret)
	set(&cfg.AMQPURL, jc.AMQPURL)
	set(&cfg.AMQPExchange, jc.AMQPExchange)
	set(&cfg.AMQPQueue, jc.AMQPQueue)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.TimeZone, jc.TimeZone)

	if jc.DemoMode != nil {
		cfg.DemoMode = *jc.DemoMode
	}
	if jc.LoadTimeout != nil {
		cfg.LoadTimeout = jc.LoadTimeout.Duration
	}
}
