package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Sheets.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Sheets.BaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Sheets.AttemptTimeout)
	assert.Equal(t, "csv", cfg.Sheets.Source)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.NotNil(t, cfg.App.Location)
}

func TestFromViperUnknownTimezoneFallsBackToUTC(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("APP_TIMEZONE", "Mars/Olympus")

	cfg := fromViper(v)

	assert.Equal(t, time.UTC, cfg.App.Location)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "sales", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=sales sslmode=disable", c.DSN())
}
