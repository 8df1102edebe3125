package entity

import (
	"fmt"
	"sort"
)

// MaxPredictions — сколько меток показываем пользователю.
const MaxPredictions = 5

// Prediction — одна метка с вероятностью в диапазоне [0,1].
type Prediction struct {
	Label       string
	Probability float32
}

// Format возвращает строку вида "cat (91.00%)".
func (p Prediction) Format() string {
	return fmt.Sprintf("%s (%.2f%%)", p.Label, p.Probability*100)
}

// RankedResult — упорядоченный итог классификации либо заглушка с текстом ошибки.
type RankedResult struct {
	Predictions []Prediction
	Failed      bool
	Message     string
}

// Rank сортирует предсказания по убыванию вероятности и оставляет не более limit.
// Сортировка стабильная: при равных вероятностях сохраняется исходный порядок модели.
// Дубликаты меток не схлопываются.
func Rank(preds []Prediction, limit int) RankedResult {
	ranked := make([]Prediction, len(preds))
	copy(ranked, preds)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return RankedResult{Predictions: ranked}
}

// Failure создаёт одноэлементный результат-заглушку для ошибок пайплайна.
func Failure(message string) RankedResult {
	return RankedResult{Failed: true, Message: message}
}

// Lines возвращает строки для отображения: метки с процентами или текст ошибки.
func (r RankedResult) Lines() []string {
	if r.Failed {
		return []string{r.Message}
	}
	lines := make([]string, 0, len(r.Predictions))
	for _, p := range r.Predictions {
		lines = append(lines, p.Format())
	}
	return lines
}

// Empty сообщает, что показывать нечего.
func (r RankedResult) Empty() bool {
	return !r.Failed && len(r.Predictions) == 0
}
