package extractors

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// Extractor координирует процесс извлечения данных из staging-области
type Extractor struct {
	db                  *sql.DB
	logger              *utils.ETLLogger
	userExtractor       *UserExtractor
	restaurantExtractor *RestaurantExtractor
	orderExtractor      *OrderExtractor
	locationExtractor   *LocationExtractor
	batchSize           int
}

// NewExtractor создает новый экземпляр Extractor
func NewExtractor(db *sql.DB, logger *utils.ETLLogger, batchSize int) *Extractor {
	return &Extractor{
		db:                  db,
		logger:              logger,
		userExtractor:       NewUserExtractor(db, logger),
		restaurantExtractor: NewRestaurantExtractor(db, logger),
		orderExtractor:      NewOrderExtractor(db, logger),
		locationExtractor:   NewLocationExtractor(db, logger),
		batchSize:           batchSize,
	}
}

// Extract выполняет извлечение данных из staging для цикла слияния
// lastProcessedOrderID — водяной знак инкрементального извлечения заказов;
// измерения извлекаются целиком: их обновление идемпотентно
func (e *Extractor) Extract(lastProcessedOrderID int) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart()

	var extractedData models.ExtractedData
	var err error

	// Извлекаем пользователей
	extractedData.Users, err = e.userExtractor.ExtractUsers()
	if err != nil {
		e.logger.Error("Ошибка при извлечении пользователей: %v", err)
		return nil, fmt.Errorf("ошибка извлечения пользователей: %w", err)
	}

	// Извлекаем рестораны
	extractedData.Restaurants, err = e.restaurantExtractor.ExtractRestaurants()
	if err != nil {
		e.logger.Error("Ошибка при извлечении ресторанов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения ресторанов: %w", err)
	}

	// Извлекаем локации
	extractedData.Locations, err = e.locationExtractor.ExtractLocations()
	if err != nil {
		e.logger.Error("Ошибка при извлечении локаций: %v", err)
		return nil, fmt.Errorf("ошибка извлечения локаций: %w", err)
	}

	// Извлекаем заказы инкрементально
	extractedData.Orders, err = e.orderExtractor.ExtractOrders(lastProcessedOrderID, e.batchSize)
	if err != nil {
		e.logger.Error("Ошибка при извлечении заказов: %v", err)
		return nil, fmt.Errorf("ошибка извлечения заказов: %w", err)
	}

	// Определяем водяной знак следующего запуска
	extractedData.LastOrderID = lastProcessedOrderID
	for _, order := range extractedData.Orders {
		if order.ID > extractedData.LastOrderID {
			extractedData.LastOrderID = order.ID
		}
	}

	// Выводим информацию о завершении
	e.logger.LogExtractComplete(
		len(extractedData.Orders),
		len(extractedData.Users),
		len(extractedData.Restaurants),
		len(extractedData.Locations),
		time.Since(startTime),
	)

	return &extractedData, nil
}
