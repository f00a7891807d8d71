// Package models содержит доменные структуры рассылки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Subscriber представляет запись подписчика рассылки.
// Email уникален в пределах таблицы, Country обязателен,
// CreatedAt выставляется хранилищем при создании и далее не меняется.
type Subscriber struct {
	ID        int       `json:"id"`         // Суррогатный первичный ключ
	Email     string    `json:"email"`      // Адрес подписчика, уникальный
	Country   string    `json:"country"`    // Страна подписчика
	CreatedAt time.Time `json:"created_at"` // Дата подписки
}

// SubscribeRequest используется для приёма данных из JSON-запроса на подписку.
type SubscribeRequest struct {
	Email   string `json:"email" validate:"required,email"` // Адрес подписчика
	Country string `json:"country" validate:"required"`     // Страна (обязательна)
}

// UnsubscribeRequest используется для приёма данных из JSON-запроса на отписку.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"` // Адрес для удаления
}
