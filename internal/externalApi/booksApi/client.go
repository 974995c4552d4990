package booksApi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/utils"
)

// Client talks to the remote book store. Every call either returns the
// declared result shape or an error carrying a status-derived message;
// partial results are never returned.
type Client struct {
	cfg    *config.Config
	client *http.Client
}

func New(cfg *config.Config) *Client {
	tr := &http.Transport{
		MaxIdleConns:    20,
		MaxConnsPerHost: 20,
		IdleConnTimeout: 30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.BooksApi.Timeout, Transport: tr},
	}
}

func (c *Client) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := c.do(ctx, http.MethodGet, "/books", nil, &books)
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (model.Book, error) {
	var book model.Book
	err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &book)
	if err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (c *Client) CreateBook(ctx context.Context, draft model.BookDraft) (model.Book, error) {
	var created model.Book
	err := c.do(ctx, http.MethodPost, "/books", draft, &created)
	if err != nil {
		return model.Book{}, err
	}
	return created, nil
}

func (c *Client) UpdateBook(ctx context.Context, id string, draft model.BookDraft) error {
	return c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), draft, nil)
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil)
}

func (c *Client) RecommendByTitle(ctx context.Context, query string) ([]model.RecommendedBook, error) {
	var books []model.RecommendedBook
	err := c.do(ctx, http.MethodGet, "/books/recommendations?q="+url.QueryEscape(query), nil, &books)
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	op := "booksApi.do"
	rqID := utils.GetRequestIDFromCtx(ctx)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BooksApi.BaseUrl+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error(
			"books api request failed",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn(
			"books api returned non-success status",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return statusError(resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
