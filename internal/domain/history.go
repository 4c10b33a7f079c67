package domain

import "time"

const DefaultHistoryLimit = 20

// SearchRecord - запись в истории поисковых запросов.
type SearchRecord struct {
	ID        int64
	Query     string
	Params    string
	Outcome   string
	CreatedAt time.Time
}

func NewSearchRecord(in SearchInput, err error) *SearchRecord {
	return &SearchRecord{
		Query:     in.Query,
		Params:    in.Params().Encode(),
		Outcome:   ErrorKind(err),
		CreatedAt: time.Now(),
	}
}
