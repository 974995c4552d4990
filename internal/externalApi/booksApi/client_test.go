package booksApi

import (
	"context"
	"errors"
	"testing"
	"time"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/internal/model"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type booksApiSuite struct {
	suite.Suite

	cfg    *config.Config
	client *Client
}

func TestBooksApiSuite(t *testing.T) {
	suite.Run(t, new(booksApiSuite))
}

func (s *booksApiSuite) SetupSuite() {
	s.cfg = &config.Config{
		BooksApi: config.BooksApi{
			BaseUrl: "https://books.test",
			Timeout: 5 * time.Second,
		},
	}
}

func (s *booksApiSuite) SetupTest() {
	s.client = New(s.cfg)
	gock.InterceptClient(s.client.client)
}

func (s *booksApiSuite) Test_ListBooks_Success() {
	defer gock.Off()

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	expected := []model.Book{
		{
			ID:            "b1",
			Title:         "Alpha",
			Authors:       []string{"A. Writer"},
			PublishedDate: "2020-01-15",
			ImageUrl:      "https://img.test/b1.jpg",
			Description:   "desc",
			CreatedAt:     createdAt,
		},
	}

	gock.New(s.cfg.BooksApi.BaseUrl).
		Get("/books").
		Reply(200).
		JSON(expected)

	books, err := s.client.ListBooks(context.Background())

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), expected, books)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_ListBooks_ServerErr() {
	defer gock.Off()

	gock.New(s.cfg.BooksApi.BaseUrl).
		Get("/books").
		Reply(500)

	_, err := s.client.ListBooks(context.Background())

	var statusErr *StatusError
	assert.True(s.T(), errors.As(err, &statusErr))
	assert.Equal(s.T(), 500, statusErr.Code)
	assert.Equal(s.T(), "The server encountered an unexpected condition", statusErr.Message)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_GetBook_NotFound() {
	defer gock.Off()

	gock.New(s.cfg.BooksApi.BaseUrl).
		Get("/books/missing").
		Reply(404)

	_, err := s.client.GetBook(context.Background(), "missing")

	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_CreateBook_Success() {
	defer gock.Off()

	draft := model.BookDraft{
		Title:         "New Book",
		Authors:       []string{"B. Author"},
		PublishedDate: "2021-03-02",
		ImageUrl:      "https://img.test/new.jpg",
		Description:   "fresh",
	}
	created := model.Book{
		ID:            "b2",
		Title:         draft.Title,
		Authors:       draft.Authors,
		PublishedDate: draft.PublishedDate,
		ImageUrl:      draft.ImageUrl,
		Description:   draft.Description,
		CreatedAt:     time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	gock.New(s.cfg.BooksApi.BaseUrl).
		Post("/books").
		JSON(draft).
		Reply(201).
		JSON(created)

	res, err := s.client.CreateBook(context.Background(), draft)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), created, res)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_UpdateBook_Success() {
	defer gock.Off()

	draft := model.BookDraft{Title: "Renamed"}

	gock.New(s.cfg.BooksApi.BaseUrl).
		Put("/books/b1").
		Reply(204)

	err := s.client.UpdateBook(context.Background(), "b1", draft)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_DeleteBook_NotFound() {
	defer gock.Off()

	gock.New(s.cfg.BooksApi.BaseUrl).
		Delete("/books/b9").
		Reply(404)

	err := s.client.DeleteBook(context.Background(), "b9")

	assert.ErrorIs(s.T(), err, ErrNotFound)
	assert.Equal(s.T(), true, gock.IsDone())
}

func (s *booksApiSuite) Test_RecommendByTitle_Success() {
	defer gock.Off()

	expected := []model.RecommendedBook{
		{Title: "Go in Action", Language: "en"},
		{Title: "Sách tiếng Việt", Language: "vi"},
	}

	gock.New(s.cfg.BooksApi.BaseUrl).
		Get("/books/recommendations").
		MatchParam("q", "go").
		Reply(200).
		JSON(expected)

	res, err := s.client.RecommendByTitle(context.Background(), "go")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), expected, res)
	assert.Equal(s.T(), true, gock.IsDone())
}
