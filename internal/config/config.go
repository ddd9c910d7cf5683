// Package config загрузка конфигурации сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Service  ServiceConfig  `toml:"service"`
	Holds    HoldsConfig    `toml:"holds"`
	Slots    SlotsConfig    `toml:"slots"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ServiceConfig доменные настройки движка доставки
type ServiceConfig struct {
	// Timezone IANA-имя часового пояса магазина; вся логика отсечки
	// и blackout-дат считается в этом поясе
	Timezone string `toml:"timezone"`
	// SearchHorizonDays ограничение поиска первой доступной даты вперед
	SearchHorizonDays int `toml:"search_horizon_days"`
	// AdminIDs пользователи с правом менять настройки доставки и слоты
	AdminIDs []int64 `toml:"admin_ids"`
}

// HoldsConfig настройки временных удержаний слотов
type HoldsConfig struct {
	TTLMinutes           int `toml:"ttl_minutes"`
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
}

// SlotsConfig настройки предгенерации слотов
type SlotsConfig struct {
	Pregenerate     bool `toml:"pregenerate"`
	HorizonDays     int  `toml:"horizon_days"`
	IntervalMinutes int  `toml:"interval_minutes"`
}

// Значения по умолчанию для опциональных полей конфигурации
const (
	defaultSearchHorizonDays = 14
	defaultHoldTTLMinutes    = 20
	defaultSweepInterval     = 60
	defaultSlotsHorizonDays  = 14
	defaultSlotsIntervalMins = 60
	defaultTimezone          = "UTC"
)

// Load читает конфигурацию из TOML файла и заполняет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Service.Timezone == "" {
		cfg.Service.Timezone = defaultTimezone
	}
	if cfg.Service.SearchHorizonDays <= 0 {
		cfg.Service.SearchHorizonDays = defaultSearchHorizonDays
	}
	if cfg.Holds.TTLMinutes <= 0 {
		cfg.Holds.TTLMinutes = defaultHoldTTLMinutes
	}
	if cfg.Holds.SweepIntervalSeconds <= 0 {
		cfg.Holds.SweepIntervalSeconds = defaultSweepInterval
	}
	if cfg.Slots.HorizonDays <= 0 {
		cfg.Slots.HorizonDays = defaultSlotsHorizonDays
	}
	if cfg.Slots.IntervalMinutes <= 0 {
		cfg.Slots.IntervalMinutes = defaultSlotsIntervalMins
	}

	return &cfg, nil
}
