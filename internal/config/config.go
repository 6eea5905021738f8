package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"local"`
	HTTPAddress     string        `env:"HTTP_ADDRESS" envDefault:":8080"`
	WSAddress       string        `env:"WS_ADDRESS" envDefault:":8081"`
	MySQLDSN        string        `env:"MYSQL_DSN,required"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	LedgerBaseURL   string        `env:"LEDGER_BASE_URL,required"`
	LedgerTimeout   time.Duration `env:"LEDGER_TIMEOUT" envDefault:"5s"`
	SettlementDelay time.Duration `env:"SETTLEMENT_DELAY" envDefault:"4s"`
	WorkerPoolSize  int           `env:"WORKER_POOL_SIZE" envDefault:"4"`
}

func MustLoad() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("cannot parse initial ENV vars: ", err)
	}

	return cfg
}
