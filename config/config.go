package config

import (
	"fmt"
)

// DatabaseConfig holds the record store credentials. The store is always
// reached over TLS; sslmode is not configurable.
type DatabaseConfig struct {
	Host     string
	Database string
	User     string
	Password string
	Port     string
}

// Complete reports whether every credential field was resolved.
func (d DatabaseConfig) Complete() bool {
	return d.Host != "" && d.Database != "" && d.User != "" && d.Password != "" && d.Port != ""
}

// DSN builds the postgres connection string with the fixed TLS policy.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		d.Host, d.User, d.Password, d.Database, d.Port)
}

// AppConfig holds the application configuration
type AppConfig struct {
	Database     DatabaseConfig
	RedisAddress string
	BearerToken  string
	CatalogPath  string
	Port         string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
