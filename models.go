package main

import (
	"database/sql"
	"time"
)

type book struct {
	id              int64
	title           string
	author          string
	isbn            string
	publish_date    time.Time
	description     sql.NullString
	cover_image_url sql.NullString
	created_at      time.Time
	updated_at      time.Time
}

type bookPatch struct {
	Title         *string
	Author        *string
	ISBN          *string
	PublishDate   *time.Time
	Description   *string
	CoverImageURL *string
}

type bookResponse struct {
	Id            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	PublishDate   string    `json:"publish_date"`
	Description   *string   `json:"description"`
	CoverImageURL *string   `json:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newBookResponse(b *book) *bookResponse {
	return &bookResponse{
		Id:            b.id,
		Title:         b.title,
		Author:        b.author,
		ISBN:          b.isbn,
		PublishDate:   b.publish_date.Format("2006-01-02"),
		Description:   nullStringPtr(b.description),
		CoverImageURL: nullStringPtr(b.cover_image_url),
		CreatedAt:     b.created_at,
		UpdatedAt:     b.updated_at,
	}
}

func newBooksResponse(books []book) []bookResponse {
	resp := []bookResponse{}
	for i := range books {
		resp = append(resp, *newBookResponse(&books[i]))
	}
	return resp
}
