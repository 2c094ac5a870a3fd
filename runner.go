package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/extractors"
	"github.com/LilVoxy/coursework_dwh/load"
	"github.com/LilVoxy/coursework_dwh/metrics"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/routes"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// ETLRunner связывает фазы Extract, Transform и Load в цикл слияния
type ETLRunner struct {
	config        config.ETLConfig
	dbConnections *config.DBConnections
	logger        *utils.ETLLogger
	extractor     *extractors.Extractor
	transformer   *transform.Transformer
	loadManager   *load.LoadManager
	etlLogRepo    models.ETLLogRepository
	reportArchive *utils.ReportArchive
	metrics       *metrics.Registry
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner(etlConfig config.ETLConfig) (*ETLRunner, error) {
	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Создаем отношения хранилища, если они еще не существуют
	if err := models.CreateWarehouseTables(connections.WarehouseDB); err != nil {
		return nil, fmt.Errorf("ошибка при создании отношений хранилища: %w", err)
	}

	// Инициализируем репозиторий журнала запусков
	etlLogRepo := models.NewMySQLETLLogRepository(connections.WarehouseDB)
	if err := etlLogRepo.CreateETLLogTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала запусков: %w", err)
	}

	// Инициализируем архив отчётов
	reportArchive, err := utils.NewReportArchive(etlConfig.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации архива отчётов: %w", err)
	}

	return &ETLRunner{
		config:        etlConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractors.NewExtractor(connections.StagingDB, logger, etlConfig.BatchSize),
		transformer:   transform.NewTransformer(logger, etlConfig.CurrencyRate, etlConfig.TargetCurrency),
		loadManager:   load.NewLoadManager(connections.WarehouseDB, logger),
		etlLogRepo:    etlLogRepo,
		reportArchive: reportArchive,
		metrics:       metrics.NewRegistry(),
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// RunCycle выполняет один цикл слияния: извлечение staging-данных,
// трансформация, загрузка в одной транзакции хранилища и итоговый отчёт.
// Построчные ошибки восстанавливаются локально и агрегируются в отчёт;
// фатален для запуска только сбой транзакции
func (r *ETLRunner) RunCycle() (*models.CycleReport, error) {
	startTime := time.Now()
	runID := uuid.New().String()
	r.logger.LogCycleStart(runID)

	report := &models.CycleReport{
		RunID:     runID,
		StartTime: startTime,
		Status:    "in_progress",
	}

	// Создаем запись в журнале запусков
	logID, err := r.etlLogRepo.CreateLogEntry(runID, startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале запусков: %v", err)
		return nil, fmt.Errorf("ошибка при создании записи в журнале запусков: %w", err)
	}

	// Получаем водяной знак последнего успешного запуска
	lastProcessedOrderID := 0
	lastRun, err := r.etlLogRepo.GetLastSuccessfulRun()
	if err != nil {
		r.logger.Error("Не удалось получить информацию о последнем успешном запуске: %v. Будет выполнено полное извлечение.", err)
	} else if lastRun != nil {
		lastProcessedOrderID = lastRun.LastProcessedOrderID
		r.logger.Info("Последний успешный запуск: %v, ID последнего заказа: %d", lastRun.EndTime, lastProcessedOrderID)
	}

	// 1. Фаза извлечения данных (Extract)
	extracted, err := r.extractor.Extract(lastProcessedOrderID)
	if err != nil {
		return r.failCycle(logID, report, fmt.Errorf("ошибка в фазе Extract: %w", err))
	}

	// Если нет новых данных, завершаем цикл
	if len(extracted.Orders) == 0 && len(extracted.Users) == 0 &&
		len(extracted.Restaurants) == 0 && len(extracted.Locations) == 0 {
		r.logger.Info("Нет новых данных для обработки")
		report.LastProcessedOrderID = lastProcessedOrderID
		return r.completeCycle(logID, report)
	}

	// 2. Фаза трансформации данных (Transform)
	transformed, err := r.transformer.Transform(extracted)
	if err != nil {
		return r.failCycle(logID, report, fmt.Errorf("ошибка в фазе Transform: %w", err))
	}
	report.Excluded = append(report.Excluded, transformed.Excluded...)

	// 3. Фаза загрузки данных (Load): одна транзакция на весь цикл
	loadResult, err := r.loadManager.Load(transformed)
	if err != nil {
		return r.failCycle(logID, report, fmt.Errorf("ошибка в фазе Load: %w", err))
	}

	report.ApplyLoadResult(loadResult)
	report.LastProcessedOrderID = extracted.LastOrderID

	return r.completeCycle(logID, report)
}

// completeCycle фиксирует успешное завершение цикла: журнал, архив, метрики
func (r *ETLRunner) completeCycle(logID int, report *models.CycleReport) (*models.CycleReport, error) {
	report.Finish("success", time.Now())

	if err := r.etlLogRepo.UpdateLogEntrySuccess(logID, report); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	if _, err := r.reportArchive.Save(report); err != nil {
		r.logger.Error("Ошибка при сохранении отчёта в архив: %v", err)
	}

	r.metrics.ObserveCycle(report)
	r.logger.LogCycleComplete(report.StartTime, report.Merged.Facts,
		report.Merged.Customers, report.Merged.Restaurants, report.Merged.Locations)

	if len(report.Excluded) > 0 {
		r.logger.Warn("Цикл завершён с исключёнными строками: %d (детали в отчёте %s)",
			len(report.Excluded), report.RunID)
	}
	if report.OrphansTotal > 0 {
		r.logger.Warn("Цикл завершён с нарушением целостности: %d фактов-сирот", report.OrphansTotal)
	}

	return report, nil
}

// failCycle фиксирует неудачное завершение цикла
func (r *ETLRunner) failCycle(logID int, report *models.CycleReport, cause error) (*models.CycleReport, error) {
	r.logger.Error("Цикл слияния %s прерван: %v", report.RunID, cause)

	report.Finish("failed", time.Now())
	report.ErrorMessage = cause.Error()

	if err := r.etlLogRepo.UpdateLogEntryFailure(logID, report.EndTime, report.ErrorMessage); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале запусков: %v", err)
	}

	if _, err := r.reportArchive.Save(report); err != nil {
		r.logger.Error("Ошибка при сохранении отчёта в архив: %v", err)
	}

	r.metrics.ObserveCycle(report)
	return report, cause
}

// StartScheduler запускает планировщик для регулярного выполнения циклов
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика циклов слияния с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск цикла слияния")
		if _, err := r.RunCycle(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного цикла: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик циклов слияния остановлен")
}

// StartHTTPServer запускает операционный HTTP-интерфейс:
// состояние процесса, журнал запусков, последний отчёт и метрики
func (r *ETLRunner) StartHTTPServer(ctx context.Context) {
	router := mux.NewRouter()
	routes.SetupRoutes(router, r.etlLogRepo, r.reportArchive, r.metrics)

	server := &http.Server{
		Addr:    r.config.HTTPAddr,
		Handler: router,
	}

	go func() {
		r.logger.Info("Запуск операционного HTTP-интерфейса на %s", r.config.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("Ошибка HTTP-сервера: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("Ошибка при остановке HTTP-сервера: %v", err)
		}
	}()
}
