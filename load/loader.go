package load

import (
	"database/sql"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Loader интерфейс для слияния данных в хранилище
// Все методы работают внутри транзакции цикла: при сбое любого из них
// менеджер откатывает транзакцию целиком
type Loader interface {
	// LoadDateDimension сливает записи календарного измерения
	LoadDateDimension(tx *sql.Tx, dates []models.DateDimension) (int, error)

	// LoadLocationDimension сливает записи измерения локаций
	LoadLocationDimension(tx *sql.Tx, locations []models.LocationDimension) (int, error)

	// LoadCustomerDimension сливает записи измерения клиентов
	LoadCustomerDimension(tx *sql.Tx, customers []models.CustomerDimension) (int, error)

	// LoadRestaurantDimension сливает записи измерения ресторанов
	LoadRestaurantDimension(tx *sql.Tx, restaurants []models.RestaurantDimension) (int, error)

	// LoadOrderFacts разрешает внешние ключи и сливает строки фактов
	LoadOrderFacts(tx *sql.Tx, facts []models.OrderFactRow) (int, []models.ExcludedRow, error)
}

// WarehouseLoader реализация Loader для базы данных хранилища
type WarehouseLoader struct {
	logger *utils.ETLLogger

	// Загрузчики для отдельных отношений
	dateLoader       *DateLoader
	locationLoader   *LocationLoader
	customerLoader   *CustomerLoader
	restaurantLoader *RestaurantLoader
	factLoader       *FactLoader
}

// NewWarehouseLoader создает новый экземпляр WarehouseLoader
func NewWarehouseLoader(logger *utils.ETLLogger) *WarehouseLoader {
	return &WarehouseLoader{
		logger:           logger,
		dateLoader:       NewDateLoader(logger),
		locationLoader:   NewLocationLoader(logger),
		customerLoader:   NewCustomerLoader(logger),
		restaurantLoader: NewRestaurantLoader(logger),
		factLoader:       NewFactLoader(logger),
	}
}

// LoadDateDimension сливает записи календарного измерения
func (l *WarehouseLoader) LoadDateDimension(tx *sql.Tx, dates []models.DateDimension) (int, error) {
	return l.dateLoader.Load(tx, dates)
}

// LoadLocationDimension сливает записи измерения локаций
func (l *WarehouseLoader) LoadLocationDimension(tx *sql.Tx, locations []models.LocationDimension) (int, error) {
	return l.locationLoader.Load(tx, locations)
}

// LoadCustomerDimension сливает записи измерения клиентов
func (l *WarehouseLoader) LoadCustomerDimension(tx *sql.Tx, customers []models.CustomerDimension) (int, error) {
	return l.customerLoader.Load(tx, customers)
}

// LoadRestaurantDimension сливает записи измерения ресторанов
func (l *WarehouseLoader) LoadRestaurantDimension(tx *sql.Tx, restaurants []models.RestaurantDimension) (int, error) {
	return l.restaurantLoader.Load(tx, restaurants)
}

// LoadOrderFacts разрешает внешние ключи и сливает строки фактов
func (l *WarehouseLoader) LoadOrderFacts(tx *sql.Tx, facts []models.OrderFactRow) (int, []models.ExcludedRow, error) {
	return l.factLoader.Load(tx, facts)
}
