package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Book is a catalog record as the remote store returns it. Fields are
// only ever changed through an explicit edit; id and createdAt are
// assigned by the store.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Authors       []string  `json:"authors"`
	PublishedDate string    `json:"publishedDate"`
	ImageUrl      string    `json:"imageUrl"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookDraft carries the editable fields of a book, without the
// store-assigned ones.
type BookDraft struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
	ImageUrl      string   `json:"imageUrl"`
	Description   string   `json:"description"`
}

func DraftOf(b Book) BookDraft {
	return BookDraft{
		Title:         b.Title,
		Authors:       append([]string(nil), b.Authors...),
		PublishedDate: b.PublishedDate,
		ImageUrl:      b.ImageUrl,
		Description:   b.Description,
	}
}

// Fingerprint serializes the draft for dirty comparison. Authors are
// joined so reordering the same names still counts as a change, exactly
// like comparing the raw form inputs.
func (d BookDraft) Fingerprint() string {
	snapshot := struct {
		Title         string `json:"title"`
		Authors       string `json:"authors"`
		PublishedDate string `json:"publishedDate"`
		ImageUrl      string `json:"imageUrl"`
		Description   string `json:"description"`
	}{
		Title:         d.Title,
		Authors:       strings.Join(d.Authors, ","),
		PublishedDate: d.PublishedDate,
		ImageUrl:      d.ImageUrl,
		Description:   d.Description,
	}

	raw, _ := json.Marshal(snapshot)
	return string(raw)
}

// RecommendedBook is a transient title suggestion shown while the user
// types a title; it never outlives the form.
type RecommendedBook struct {
	Title    string `json:"title"`
	Language string `json:"language"`
}

// ChatPreferences is the durable per-chat configuration.
type ChatPreferences struct {
	ChatID   int64  `db:"chat_id"`
	Language string `db:"language"`
	PageSize int    `db:"page_size"`
}
