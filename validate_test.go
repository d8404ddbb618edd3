package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_CollectsEveryViolation(t *testing.T) {
	type input struct {
		Title string `json:"title" validate:"required,min=1,max=100"`
		ISBN  string `json:"isbn" validate:"required,len=13"`
		Date  string `json:"publish_date" validate:"required,datetime=2006-01-02"`
	}

	v := newValidator()
	err := v.Struct(&input{})
	require.Error(t, err)

	fieldErrs := validationErrors(err)
	assert.Equal(t, map[string]string{
		"title":        "Missing data for required field.",
		"isbn":         "Missing data for required field.",
		"publish_date": "Missing data for required field.",
	}, fieldErrs)

	err = v.Struct(&input{Title: strings.Repeat("a", 101), ISBN: "123", Date: "yesterday"})
	require.Error(t, err)

	fieldErrs = validationErrors(err)
	assert.Equal(t, map[string]string{
		"title":        "Length must be between 1 and 100.",
		"isbn":         "Length must be 13.",
		"publish_date": "Not a valid date.",
	}, fieldErrs)
}

func TestDecodeBookInput(t *testing.T) {
	type input struct {
		Title string `json:"title"`
	}

	t.Run("read-only fields reported", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"id":1,"updated_at":"2023-05-01T00:00:00Z","title":"Test Book"}`))

		var params input
		fieldErrs, err := decodeBookInput(req, &params)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"id":         "Unknown field.",
			"updated_at": "Unknown field.",
		}, fieldErrs)
		assert.Equal(t, "Test Book", params.Title)
	})

	t.Run("explicit null reported", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":null}`))

		var params input
		fieldErrs, err := decodeBookInput(req, &params)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"title": "Field may not be null."}, fieldErrs)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(`{"title":`))

		var params input
		_, err := decodeBookInput(req, &params)
		assert.Error(t, err)
	})
}
