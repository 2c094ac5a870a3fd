package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/snappy"

	"github.com/LilVoxy/coursework_dwh/models"
)

const reportFileSuffix = ".json.snappy"

// ReportArchive сохраняет итоговые отчёты циклов на диск в сжатом виде
// Один файл на запуск: report_<run_id>.json.snappy
type ReportArchive struct {
	dir string
}

// NewReportArchive создает архив отчётов в указанном каталоге
func NewReportArchive(dir string) (*ReportArchive, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка при создании каталога архива отчётов: %w", err)
	}

	return &ReportArchive{dir: dir}, nil
}

// Save сериализует отчёт в JSON, сжимает snappy и записывает на диск
// Возвращает путь к записанному файлу
func (a *ReportArchive) Save(report *models.CycleReport) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("ошибка при сериализации отчёта %s: %w", report.RunID, err)
	}

	compressed := snappy.Encode(nil, data)

	path := filepath.Join(a.dir, fmt.Sprintf("report_%s%s", report.RunID, reportFileSuffix))
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return "", fmt.Errorf("ошибка при записи отчёта %s: %w", report.RunID, err)
	}

	return path, nil
}

// Load читает и распаковывает отчёт по идентификатору запуска
func (a *ReportArchive) Load(runID string) (*models.CycleReport, error) {
	path := filepath.Join(a.dir, fmt.Sprintf("report_%s%s", runID, reportFileSuffix))

	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении отчёта %s: %w", runID, err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("ошибка при распаковке отчёта %s: %w", runID, err)
	}

	var report models.CycleReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("ошибка при разборе отчёта %s: %w", runID, err)
	}

	return &report, nil
}

// LoadLatest возвращает отчёт последнего завершившегося цикла
// или nil, если архив пуст
func (a *ReportArchive) LoadLatest() (*models.CycleReport, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении каталога архива: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportFileSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}

	if len(names) == 0 {
		return nil, nil
	}

	// Выбираем самый свежий файл по времени изменения
	sort.Slice(names, func(i, j int) bool {
		fi, errI := os.Stat(filepath.Join(a.dir, names[i]))
		fj, errJ := os.Stat(filepath.Join(a.dir, names[j]))
		if errI != nil || errJ != nil {
			return names[i] < names[j]
		}
		return fi.ModTime().Before(fj.ModTime())
	})

	latest := names[len(names)-1]
	runID := strings.TrimSuffix(strings.TrimPrefix(latest, "report_"), reportFileSuffix)

	return a.Load(runID)
}
