package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func bookIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
}

// handleGetBooks godoc
//
//	@Summary		List books
//	@Description	List all books
//	@Tags			books
//	@Produce		application/json
//	@Failure		401	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Success		200	{array}		bookResponse
//	@Router			/books [get]
func (s *server) handleGetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.listBooks(r.Context())
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusOK, newBooksResponse(books))
}

// handleGetBook godoc
//
//	@Summary		Get book
//	@Description	Get one book by id
//	@Tags			books
//	@Produce		application/json
//	@Param			bookID	path		int	true	"book id"
//	@Failure		401		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Success		200		{object}	bookResponse
//	@Router			/books/{bookID} [get]
func (s *server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}

	b, err := s.books.getBook(r.Context(), id)
	if errors.Is(err, errBookNotFound) {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusOK, newBookResponse(b))
}

// handleCreateBook godoc
//
//	@Summary		Create book
//	@Description	Create a book
//	@Tags			books
//	@Accept			application/json
//	@Produce		application/json
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	errorResponse
//	@Failure		409	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Success		201	{object}	bookResponse
//	@Router			/books [post]
func (s *server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Title         string  `json:"title" validate:"required,min=1,max=100"`
		Author        string  `json:"author" validate:"required,min=1,max=100"`
		ISBN          string  `json:"isbn" validate:"required,len=13"`
		PublishDate   string  `json:"publish_date" validate:"required,datetime=2006-01-02"`
		Description   *string `json:"description"`
		CoverImageURL *string `json:"cover_image_url"`
	}

	var params request
	fieldErrs, err := decodeBookInput(r, &params)
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusBadRequest, &errorResponse{Error: "Bad request"})
		return
	}

	if err := s.validator.Struct(&params); err != nil {
		for field, msg := range validationErrors(err) {
			if _, ok := fieldErrs[field]; !ok {
				fieldErrs[field] = msg
			}
		}
	}
	if len(fieldErrs) > 0 {
		encode(w, http.StatusBadRequest, fieldErrs)
		return
	}

	publishDate, err := time.Parse("2006-01-02", params.PublishDate)
	if err != nil {
		encode(w, http.StatusBadRequest, map[string]string{"publish_date": "Not a valid date."})
		return
	}

	created, err := s.books.createBook(r.Context(), &book{
		title:           params.Title,
		author:          params.Author,
		isbn:            params.ISBN,
		publish_date:    publishDate,
		description:     nullString(params.Description),
		cover_image_url: nullString(params.CoverImageURL),
	})

	if errors.Is(err, errISBNTaken) {
		encode(w, http.StatusConflict, &errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusCreated, newBookResponse(created))
}

// handleUpdateBook godoc
//
//	@Summary		Update book
//	@Description	Update supplied fields of a book
//	@Tags			books
//	@Accept			application/json
//	@Produce		application/json
//	@Param			bookID	path		int	true	"book id"
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		409		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Success		200		{object}	bookResponse
//	@Router			/books/{bookID} [put]
func (s *server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Title         *string `json:"title" validate:"omitnil,min=1,max=100"`
		Author        *string `json:"author" validate:"omitnil,min=1,max=100"`
		ISBN          *string `json:"isbn" validate:"omitnil,len=13"`
		PublishDate   *string `json:"publish_date" validate:"omitnil,datetime=2006-01-02"`
		Description   *string `json:"description"`
		CoverImageURL *string `json:"cover_image_url"`
	}

	id, err := bookIDParam(r)
	if err != nil {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}

	var params request
	fieldErrs, err := decodeBookInput(r, &params)
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusBadRequest, &errorResponse{Error: "Bad request"})
		return
	}

	if err := s.validator.Struct(&params); err != nil {
		for field, msg := range validationErrors(err) {
			if _, ok := fieldErrs[field]; !ok {
				fieldErrs[field] = msg
			}
		}
	}
	if len(fieldErrs) > 0 {
		encode(w, http.StatusBadRequest, fieldErrs)
		return
	}

	patch := &bookPatch{
		Title:         params.Title,
		Author:        params.Author,
		ISBN:          params.ISBN,
		Description:   params.Description,
		CoverImageURL: params.CoverImageURL,
	}
	if params.PublishDate != nil {
		publishDate, err := time.Parse("2006-01-02", *params.PublishDate)
		if err != nil {
			encode(w, http.StatusBadRequest, map[string]string{"publish_date": "Not a valid date."})
			return
		}
		patch.PublishDate = &publishDate
	}

	updated, err := s.books.updateBook(r.Context(), id, patch)
	if errors.Is(err, errBookNotFound) {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}
	if errors.Is(err, errISBNTaken) {
		encode(w, http.StatusConflict, &errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusOK, newBookResponse(updated))
}

// handleDeleteBook godoc
//
//	@Summary		Delete book
//	@Description	Delete a book permanently
//	@Tags			books
//	@Param			bookID	path		int	true	"book id"
//	@Failure		401		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Success		204
//	@Router			/books/{bookID} [delete]
func (s *server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIDParam(r)
	if err != nil {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}

	if err := s.books.deleteBook(r.Context(), id); err != nil {
		if errors.Is(err, errBookNotFound) {
			encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
			return
		}
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUploadCover godoc
//
//	@Summary		Upload book cover
//	@Description	Upload a cover image for a book
//	@Tags			books
//	@Accept			multipart/form-data
//	@Produce		application/json
//	@Param			bookID	path		int		true	"book id"
//	@Param			file	formData	file	true	"cover image"
//	@Failure		400		{object}	errorResponse
//	@Failure		401		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Success		200		{object}	main.handleUploadCover.response
//	@Router			/books/{bookID}/cover [post]
func (s *server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	}

	id, err := bookIDParam(r)
	if err != nil {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		encode(w, http.StatusBadRequest, &errorResponse{Error: "No file part"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		// A part submitted with an empty filename is parsed as a plain form
		// value, so it never shows up under MultipartForm.File.
		if len(r.MultipartForm.Value["file"]) > 0 {
			encode(w, http.StatusBadRequest, &errorResponse{Error: "No selected file"})
			return
		}
		encode(w, http.StatusBadRequest, &errorResponse{Error: "No file part"})
		return
	}
	defer file.Close()

	b, err := s.books.getBook(r.Context(), id)
	if errors.Is(err, errBookNotFound) {
		encode(w, http.StatusNotFound, &errorResponse{Error: "Not found"})
		return
	}
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	// The object write and the database write are not atomic: a failed
	// database update leaves an orphaned object at the deterministic key,
	// which the next successful upload for this isbn overwrites.
	url, err := s.covers.upload(r.Context(), fmt.Sprintf("%s_cover.jpg", b.isbn), file)
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	if _, err := s.books.setBookCover(r.Context(), id, url); err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusOK, &response{Message: "Cover image uploaded successfully", URL: url})
}

// handleSearchBooks godoc
//
//	@Summary		Search books
//	@Description	Case-insensitive substring search over title, author and isbn
//	@Tags			books
//	@Produce		application/json
//	@Param			q	query		string	false	"substring"
//	@Failure		401	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
//	@Success		200	{array}		bookResponse
//	@Router			/books/search [get]
func (s *server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.searchBooks(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Error(err.Error())
		encode(w, http.StatusInternalServerError, &errorResponse{Error: "internal server error"})
		return
	}

	encode(w, http.StatusOK, newBooksResponse(books))
}
