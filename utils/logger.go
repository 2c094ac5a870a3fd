package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// ETLLogger представляет логгер для процесса слияния
type ETLLogger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
	echoStdout  bool
}

// NewETLLogger создает новый экземпляр логгера для ETL
func NewETLLogger(verbose bool) *ETLLogger {
	// Создаем или открываем лог-файл для записи
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("dwh_etl_log_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	// Инициализируем логгеры для разных уровней
	infoLogger := log.New(file, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	warnLogger := log.New(file, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(file, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		warnLogger:  warnLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
		echoStdout:  true,
	}
}

// NewSilentLogger создает логгер, пишущий только в io.Discard
// Используется в тестах, чтобы не создавать лог-файлы
func NewSilentLogger() *ETLLogger {
	discard := log.New(io.Discard, "", 0)
	return &ETLLogger{
		infoLogger:  discard,
		warnLogger:  discard,
		errorLogger: discard,
		debugLogger: discard,
		isVerbose:   false,
		echoStdout:  false,
	}
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("INFO:", msg)
	}
}

// Warn логирует предупреждение (неоднозначное гео-сопоставление,
// ненулевое количество сирот и другие нефатальные проблемы качества)
func (l *ETLLogger) Warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.warnLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("WARN:", msg)
	}
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("ERROR:", msg)
	}
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)

	// Также выводим в стандартный вывод
	if l.echoStdout {
		log.Println("DEBUG:", msg)
	}
}

// LogCycleStart логирует начало цикла слияния
func (l *ETLLogger) LogCycleStart(runID string) {
	l.Info("Начало цикла слияния %s", runID)
}

// LogCycleComplete логирует завершение цикла слияния
func (l *ETLLogger) LogCycleComplete(startTime time.Time, facts, customers, restaurants, locations int) {
	duration := time.Since(startTime)
	l.Info("Цикл слияния завершён. Длительность: %v", duration)
	l.Info("Слито: %d фактов, %d клиентов, %d ресторанов, %d локаций", facts, customers, restaurants, locations)
}

// LogExtractStart логирует начало фазы извлечения данных
func (l *ETLLogger) LogExtractStart() {
	l.Info("Начало фазы Extract (Извлечение данных)")
}

// LogExtractComplete логирует завершение фазы извлечения данных
func (l *ETLLogger) LogExtractComplete(orders, users, restaurants, locations int, duration time.Duration) {
	l.Info("Фаза Extract завершена. Длительность: %v", duration)
	l.Info("Извлечено: %d заказов, %d пользователей, %d ресторанов, %d локаций", orders, users, restaurants, locations)
}
