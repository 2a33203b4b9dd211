package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/football-hub/internal/domain/news"
)

type newsTableModel struct {
	ID           int64          `db:"id,readonly"`
	SourceID     string         `db:"source_id"`
	Competition  string         `db:"competition"`
	Title        string         `db:"title"`
	Excerpt      string         `db:"excerpt"`
	Content      string         `db:"content"`
	ThumbnailURL string         `db:"thumbnail_url"`
	SourceURL    string         `db:"source_url"`
	SourceName   string         `db:"source_name"`
	Category     string         `db:"category"`
	Tags         pq.StringArray `db:"tags"`
	Round        string         `db:"round"`
	PublishedAt  time.Time      `db:"published_at"`
	CreatedAt    time.Time      `db:"created_at,readonly"`
}

func newsToModel(item news.Item) newsTableModel {
	tags := pq.StringArray(item.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}
	return newsTableModel{
		SourceID:     item.SourceID,
		Competition:  item.Competition,
		Title:        item.Title,
		Excerpt:      item.Excerpt,
		Content:      item.Content,
		ThumbnailURL: item.ThumbnailURL,
		SourceURL:    item.SourceURL,
		SourceName:   item.SourceName,
		Category:     item.Category,
		Tags:         tags,
		Round:        item.Round,
		PublishedAt:  item.PublishedAt.UTC(),
	}
}

func (m newsTableModel) toDomain() news.Item {
	return news.Item{
		ID:           m.ID,
		SourceID:     m.SourceID,
		Competition:  m.Competition,
		Title:        m.Title,
		Excerpt:      m.Excerpt,
		Content:      m.Content,
		ThumbnailURL: m.ThumbnailURL,
		SourceURL:    m.SourceURL,
		SourceName:   m.SourceName,
		Category:     m.Category,
		Tags:         []string(m.Tags),
		Round:        m.Round,
		PublishedAt:  m.PublishedAt.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
