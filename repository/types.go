package repository

import (
	"time"

	"github.com/crmarques/datashelf/resource"
)

// ListResult separates readable records from entries that were discovered
// but could not be read back.
type ListResult struct {
	Records  []resource.Record
	Failures []EntryFailure
}

type EntryFailure struct {
	ID  string
	Err error
}

type HistoryFilter struct {
	MaxCount int
}

type HistoryEntry struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Author  string    `json:"author" yaml:"author"`
	Email   string    `json:"email" yaml:"email"`
	Date    time.Time `json:"date" yaml:"date"`
	Subject string    `json:"subject" yaml:"subject"`
}
