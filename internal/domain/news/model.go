package news

import "time"

const (
	CategoryNews    = "News"
	MaxExcerptRunes = 300
)

// Item is identified by SourceID alone and is inserted once.
type Item struct {
	ID           int64
	SourceID     string `validate:"required"`
	Competition  string `validate:"required"`
	Title        string `validate:"required"`
	Excerpt      string
	Content      string
	ThumbnailURL string
	SourceURL    string `validate:"required"`
	SourceName   string
	Category     string
	Tags         []string
	Round        string
	PublishedAt  time.Time
	CreatedAt    time.Time
}

type Filter struct {
	Competition string
	Category    string
	Query       string
	Page        int
	PerPage     int
}
