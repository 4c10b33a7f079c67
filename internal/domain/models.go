package domain

// Status - остаток квоты по API-ключу.
type Status struct {
	RemainingRequests int `json:"remaining_requests"`
}

// SERP - сырой ответ /search, структуру определяет провайдер.
type SERP map[string]any

// HL - язык интерфейса Google (hl).
type HL struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// GL - страна поиска Google (gl).
type GL struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Location = string

type SearchEngine = string

// Catalog - все справочники API разом.
type Catalog struct {
	HL            []HL           `json:"hl"`
	GL            []GL           `json:"gl"`
	Locations     []Location     `json:"locations"`
	SearchEngines []SearchEngine `json:"search_engines"`
}
