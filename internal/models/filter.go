package models

import "time"

// ListFilter описывает конъюнктивный фильтр выборки подписчиков:
// подстрока email, точное совпадение страны и включительный диапазон
// по дате подписки. Диапазон применяется только когда заданы обе границы.
type ListFilter struct {
	Search    string     // Подстрока для поиска по email
	Country   string     // Точное совпадение страны
	StartDate *time.Time // Нижняя граница created_at (включительно)
	EndDate   *time.Time // Верхняя граница created_at (включительно)
}
