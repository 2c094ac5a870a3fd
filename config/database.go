package config

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// DBConnections содержит подключения к базам данных
type DBConnections struct {
	StagingDB   *sql.DB
	WarehouseDB *sql.DB
}

// dsn собирает строку подключения для MySQL
func dsn(cfg DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)
}

// ConnectDatabases устанавливает подключения к staging БД и БД хранилища
func ConnectDatabases(config ETLConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	// Подключение к staging базе данных (исходная)
	connections.StagingDB, err = sql.Open(config.StagingConfig.Driver, dsn(config.StagingConfig))
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к staging базе данных: %w", err)
	}

	// Настройка параметров подключения к staging
	connections.StagingDB.SetMaxOpenConns(10)
	connections.StagingDB.SetMaxIdleConns(5)
	connections.StagingDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к staging
	if err := connections.StagingDB.Ping(); err != nil {
		connections.StagingDB.Close()
		return nil, fmt.Errorf("не удалось установить соединение со staging базой данных: %w", err)
	}

	// Подключение к базе данных хранилища (целевая)
	connections.WarehouseDB, err = sql.Open(config.WarehouseConfig.Driver, dsn(config.WarehouseConfig))
	if err != nil {
		// Закрываем первое подключение при ошибке
		connections.StagingDB.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных хранилища: %w", err)
	}

	// Настройка параметров подключения к хранилищу
	connections.WarehouseDB.SetMaxOpenConns(10)
	connections.WarehouseDB.SetMaxIdleConns(5)
	connections.WarehouseDB.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения к хранилищу
	if err := connections.WarehouseDB.Ping(); err != nil {
		connections.StagingDB.Close()
		connections.WarehouseDB.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных хранилища: %w", err)
	}

	log.Println("Успешное подключение к staging базе и базе хранилища")
	return &connections, nil
}

// CloseDatabases закрывает подключения к базам данных
func CloseDatabases(connections *DBConnections) {
	if connections.StagingDB != nil {
		if err := connections.StagingDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения со staging базой данных: %v", err)
		}
	}

	if connections.WarehouseDB != nil {
		if err := connections.WarehouseDB.Close(); err != nil {
			log.Printf("Ошибка при закрытии соединения с базой данных хранилища: %v", err)
		}
	}

	log.Println("Соединения с базами данных закрыты")
}
