package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type config struct {
	Addr        string `env:"ADDR" envDefault:":3000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/library?sslmode=disable"`
	APIKey      string `env:"API_KEY" envDefault:"your-api-key-here"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"your-s3-bucket-name"`
}

func loadConfig() (*config, error) {
	godotenv.Load()

	cfg := &config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing env config, %v", err)
	}
	return cfg, nil
}
