// main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/coursework_dwh/config"
)

// RunOnce запускает один цикл слияния
func RunOnce(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	report, err := runner.RunCycle()
	if err != nil {
		log.Fatalf("Ошибка при выполнении цикла слияния: %v", err)
	}

	log.Printf("Цикл %s завершён за %.2f с: фактов=%d, исключено=%d, сирот=%d",
		report.RunID, report.ExecutionTimeSeconds, report.Merged.Facts,
		len(report.Excluded), report.OrphansTotal)
}

// RunScheduled запускает циклы слияния по расписанию
// вместе с операционным HTTP-интерфейсом
func RunScheduled(etlConfig config.ETLConfig) {
	// Создаем контекст, который будет отменен при получении сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	// Запускаем горутину для обработки сигналов
	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем ETL Runner...")
		cancel()
	}()

	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	// Запускаем HTTP-интерфейс и планировщик
	runner.StartHTTPServer(ctx)
	runner.StartScheduler(ctx)
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "scheduled", "Режим работы: scheduled или once")
	ratePtr := flag.Float64("rate", 0, "Курс пересчёта USD в целевую валюту (0 — значение из конфигурации)")
	intervalPtr := flag.Duration("interval", 0, "Интервал между циклами (0 — значение из конфигурации)")
	verbosePtr := flag.Bool("verbose", true, "Детальное логирование")

	flag.Parse()

	etlConfig := config.GetConfig()
	etlConfig.EnableDetailedLogging = *verbosePtr
	if *ratePtr > 0 {
		etlConfig.CurrencyRate = *ratePtr
	}
	if *intervalPtr > 0 {
		etlConfig.RunInterval = *intervalPtr
	}

	log.Println("Запуск ETL Runner в режиме:", *modePtr)
	startTime := time.Now()

	switch *modePtr {
	case "once":
		RunOnce(etlConfig)
	case "scheduled":
		RunScheduled(etlConfig)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: scheduled, once")
		os.Exit(1)
	}

	log.Printf("ETL Runner завершил работу. Время работы: %v", time.Since(startTime))
}
