package models

import (
	"database/sql"
	"fmt"
)

// Схема хранилища задается кодом и создается идемпотентно при старте.
// Суррогатные ключи — AUTO_INCREMENT, естественные ключи — UNIQUE:
// за счет этого повторное слияние никогда не выдает второй суррогатный
// ключ для уже известного естественного ключа
var warehouseTables = []string{
	`CREATE TABLE IF NOT EXISTS delivery_analytics.date_dimension (
		date_key INT PRIMARY KEY,
		full_date DATE NOT NULL,
		year INT NOT NULL,
		quarter INT NOT NULL,
		month INT NOT NULL,
		month_name VARCHAR(3) NOT NULL,
		day_of_month INT NOT NULL,
		day_of_week INT NOT NULL,
		is_weekend BOOLEAN NOT NULL DEFAULT FALSE
	);`,

	`CREATE TABLE IF NOT EXISTS delivery_analytics.location_dimension (
		location_key INT AUTO_INCREMENT PRIMARY KEY,
		location_nk VARCHAR(255) NOT NULL UNIQUE,
		country VARCHAR(100),
		state VARCHAR(100),
		city VARCHAR(100),
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS delivery_analytics.customer_dimension (
		customer_key INT AUTO_INCREMENT PRIMARY KEY,
		customer_nk VARCHAR(100) NOT NULL UNIQUE,
		name VARCHAR(255),
		email VARCHAR(255),
		age INT NULL,
		gender VARCHAR(20),
		marital_status VARCHAR(50),
		occupation VARCHAR(100),
		family_size INT NULL,
		income_bracket VARCHAR(20),
		income_rank INT DEFAULT 9,
		education_level VARCHAR(30),
		education_rank INT DEFAULT 0,
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS delivery_analytics.restaurant_dimension (
		restaurant_key INT AUTO_INCREMENT PRIMARY KEY,
		restaurant_nk VARCHAR(100) NOT NULL UNIQUE,
		name VARCHAR(255),
		city VARCHAR(255),
		rating FLOAT NULL,
		cuisines TEXT,
		location_key INT NULL,
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS delivery_analytics.order_facts (
		order_key INT AUTO_INCREMENT PRIMARY KEY,
		order_nk VARCHAR(512) NOT NULL UNIQUE,
		date_key INT NOT NULL,
		customer_key INT NOT NULL,
		restaurant_key INT NOT NULL,
		location_key INT NULL,
		quantity INT NOT NULL,
		amount DOUBLE NOT NULL,
		currency VARCHAR(10),
		last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// CreateWarehouseTables создает отношения хранилища, если они не существуют
func CreateWarehouseTables(db *sql.DB) error {
	for _, query := range warehouseTables {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("ошибка при создании таблицы хранилища: %w", err)
		}
	}

	return nil
}
