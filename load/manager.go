package load

import (
	"database/sql"
	"time"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// LoadManager отвечает за управление фазой Load одного цикла слияния
// Весь цикл — измерения, гео-сопоставление, факты, проверка качества —
// выполняется в одной транзакции хранилища: при любом сбое все частичные
// записи цикла откатываются и ни одно отношение не остаётся
// с несогласованными связками суррогатных и естественных ключей
type LoadManager struct {
	db          *sql.DB
	logger      *utils.ETLLogger
	loader      Loader
	geoLinkage  *GeoLinkage
	qualityGate *QualityGate
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(db *sql.DB, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		db:          db,
		logger:      logger,
		loader:      NewWarehouseLoader(logger),
		geoLinkage:  NewGeoLinkage(logger),
		qualityGate: NewQualityGate(logger),
	}
}

// Load выполняет фазу загрузки данных цикла слияния
// Порядок фиксирован: календарь и измерения до гео-сопоставления,
// гео-сопоставление до фактов (факт наследует локацию ресторана),
// проверка качества — последней
func (m *LoadManager) Load(data *models.TransformedData) (*models.LoadResult, error) {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	tx, err := m.db.Begin()
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "begin", Err: err}
	}

	result, err := m.loadInTx(tx, data)
	if err != nil {
		// Откатываем все частичные записи цикла
		if rbErr := tx.Rollback(); rbErr != nil {
			m.logger.Error("Ошибка при откате транзакции цикла: %v", rbErr)
		}
		m.logger.Error("Фаза Load прервана, транзакция цикла откатена: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.TransactionFailureError{Stage: "commit", Err: err}
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))
	return result, nil
}

// loadInTx выполняет все шаги слияния внутри переданной транзакции
func (m *LoadManager) loadInTx(tx *sql.Tx, data *models.TransformedData) (*models.LoadResult, error) {
	result := &models.LoadResult{}
	var err error

	// 1. Календарное измерение
	result.Merged.Dates, err = m.loader.LoadDateDimension(tx, data.Dates)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "date_dimension", Err: err}
	}

	// 2. Измерение локаций
	result.Merged.Locations, err = m.loader.LoadLocationDimension(tx, data.Locations)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "location_dimension", Err: err}
	}

	// 3. Измерение клиентов
	result.Merged.Customers, err = m.loader.LoadCustomerDimension(tx, data.Customers)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "customer_dimension", Err: err}
	}

	// 4. Измерение ресторанов
	result.Merged.Restaurants, err = m.loader.LoadRestaurantDimension(tx, data.Restaurants)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "restaurant_dimension", Err: err}
	}

	// 5. Гео-сопоставление ресторанов и локаций
	result.GeoAssigned, result.GeoAmbiguous, err = m.geoLinkage.Resolve(tx)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "geo_linkage", Err: err}
	}

	// 6. Факты заказов
	var excluded []models.ExcludedRow
	result.Merged.Facts, excluded, err = m.loader.LoadOrderFacts(tx, data.Facts)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "order_facts", Err: err}
	}
	result.Excluded = append(result.Excluded, excluded...)

	// 7. Проверка качества
	quality, err := m.qualityGate.Run(tx)
	if err != nil {
		return nil, &models.TransactionFailureError{Stage: "quality_gate", Err: err}
	}
	result.Orphans = quality.Orphans
	result.FactsDeleted = quality.FactsDeleted
	result.RowCounts = quality.RowCounts

	return result, nil
}
