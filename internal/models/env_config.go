package models

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	DatabaseURL string
	Port        string
	PageSize    int
	Debug       bool
}

func ReadEnvConfig() EnvConfig {
	// A missing .env is fine; real env vars win either way.
	godotenv.Load()

	debug := os.Getenv("ASKHUB_DEBUG") == "true"
	port := os.Getenv("ASKHUB_PORT")
	if port == "" {
		port = "8080"
	}
	pageSize, err := strconv.Atoi(os.Getenv("ASKHUB_PAGE_SIZE"))
	if err != nil {
		fmt.Println("Using default value for ASKHUB_PAGE_SIZE")
		pageSize = 20
	}
	return EnvConfig{
		DatabaseURL: os.Getenv("ASKHUB_DATABASE_URL"),
		Port:        port,
		PageSize:    pageSize,
		Debug:       debug,
	}
}
