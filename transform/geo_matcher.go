package transform

import (
	"sort"
	"strings"
)

// LocationCandidate описывает запись измерения локаций,
// участвующую в гео-сопоставлении
type LocationCandidate struct {
	Key  int
	City string
}

// RankLocationCandidates возвращает локации, чей город является
// подстрокой (без учета регистра) свободного текстового поля города
// ресторана. Кандидаты упорядочены детерминированно: сначала более
// короткое название города, при равенстве — меньший суррогатный ключ.
// У исходной модели данных нет правила выбора среди нескольких
// совпадений, поэтому порядок ранжирования — наше воспроизводимое
// соглашение, а сам факт неоднозначности выносится в отчёт и метрики
func RankLocationCandidates(restaurantCity string, locations []LocationCandidate) []LocationCandidate {
	city := strings.ToLower(strings.TrimSpace(restaurantCity))
	if city == "" {
		return nil
	}

	var matched []LocationCandidate
	for _, loc := range locations {
		locCity := strings.ToLower(strings.TrimSpace(loc.City))
		if locCity == "" {
			continue
		}
		if strings.Contains(city, locCity) {
			matched = append(matched, loc)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		li, lj := len(strings.TrimSpace(matched[i].City)), len(strings.TrimSpace(matched[j].City))
		if li != lj {
			return li < lj
		}
		return matched[i].Key < matched[j].Key
	})

	return matched
}

// MatchLocation выбирает локацию для города ресторана
// Возвращает суррогатный ключ выбранной локации (0 — совпадений нет)
// и общее число кандидатов: значение больше единицы означает
// неоднозначное сопоставление
func MatchLocation(restaurantCity string, locations []LocationCandidate) (int, int) {
	ranked := RankLocationCandidates(restaurantCity, locations)
	if len(ranked) == 0 {
		return 0, 0
	}
	return ranked[0].Key, len(ranked)
}
