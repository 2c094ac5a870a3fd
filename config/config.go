package config

import (
	"time"
)

// ETLConfig содержит конфигурацию для процесса слияния
type ETLConfig struct {
	// Конфигурация для подключения к staging БД (исходной)
	StagingConfig DatabaseConfig `json:"staging_config"`

	// Конфигурация для подключения к БД хранилища (целевой)
	WarehouseConfig DatabaseConfig `json:"warehouse_config"`

	// Интервал запуска циклов слияния
	RunInterval time.Duration `json:"run_interval"`

	// Максимальное количество заказов, обрабатываемых за один цикл
	BatchSize int `json:"batch_size"`

	// Курс пересчёта сумм из USD в целевую валюту
	// Внешний параметр конфигурации, не зашит в правила обогащения
	CurrencyRate float64 `json:"currency_rate"`

	// Код целевой валюты хранилища
	TargetCurrency string `json:"target_currency"`

	// Каталог для архива отчётов циклов
	ReportDir string `json:"report_dir"`

	// Адрес операционного HTTP-интерфейса
	HTTPAddr string `json:"http_addr"`

	// Включение/отключение детального логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// Значения конфигурации по умолчанию
var (
	DefaultStagingConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "food_delivery",
	}

	DefaultWarehouseConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "delivery_analytics",
	}

	DefaultETLConfig = ETLConfig{
		StagingConfig:         DefaultStagingConfig,
		WarehouseConfig:       DefaultWarehouseConfig,
		RunInterval:           1 * time.Hour,
		BatchSize:             50000,
		CurrencyRate:          87.0,
		TargetCurrency:        "INR",
		ReportDir:             "reports",
		HTTPAddr:              ":8090",
		EnableDetailedLogging: true,
	}
)

// GetConfig возвращает конфигурацию процесса слияния
func GetConfig() ETLConfig {
	return DefaultETLConfig
}
