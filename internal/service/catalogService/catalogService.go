package catalogService

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/internal/catalog"
	"book_catalog_tgbot/internal/externalApi/booksApi"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/repository"
	"book_catalog_tgbot/internal/validate"
	"book_catalog_tgbot/utils"
)

type Gateway interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	CreateBook(ctx context.Context, draft model.BookDraft) (model.Book, error)
	UpdateBook(ctx context.Context, id string, draft model.BookDraft) error
	DeleteBook(ctx context.Context, id string) error
	RecommendByTitle(ctx context.Context, query string) ([]model.RecommendedBook, error)
}

type ImageStorage interface {
	Upload(ctx context.Context, file io.Reader, objectKey, contentType string, contentLength int64) (string, error)
}

type PreferencesRepo interface {
	GetPreferences(ctx context.Context, chatId int64) (model.ChatPreferences, error)
	UpsertLanguage(ctx context.Context, chatId int64, language string) error
	UpsertPageSize(ctx context.Context, chatId int64, pageSize int) error
}

// CatalogService sequences every mutation against the remote store and
// reconciles the chat's catalog session afterward. On failure the
// session is left untouched; on success the record set is refreshed
// wholesale so store-assigned fields stay authoritative.
type CatalogService struct {
	cfg     *config.Config
	gateway Gateway
	images  ImageStorage
	prefs   PreferencesRepo
}

func New(cfg *config.Config, gateway Gateway, images ImageStorage, prefs PreferencesRepo) *CatalogService {
	return &CatalogService{cfg: cfg, gateway: gateway, images: images, prefs: prefs}
}

// LoadCatalog replaces the authoritative record set with a fresh fetch.
// The search term does not survive a full re-fetch.
func (s *CatalogService) LoadCatalog(ctx context.Context, session *model.CatalogSession) error {
	op := "CatalogService.LoadCatalog"
	rqID := utils.GetRequestIDFromCtx(ctx)

	books, err := s.gateway.ListBooks(ctx)
	if err != nil {
		slog.Error("got error from gateway.ListBooks", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	session.Books = books
	session.SearchTerm = ""
	if session.CurrentPage < 1 {
		session.CurrentPage = 1
	}

	return nil
}

// ProjectPage derives the visible slice for the session's current
// parameters.
func (s *CatalogService) ProjectPage(ctx context.Context, chatID int64, session *model.CatalogSession) catalog.RenderModel {
	return catalog.Project(session.Books, catalog.Params{
		SearchTerm: session.SearchTerm,
		Sort:       session.SortDirection,
		Page:       session.CurrentPage,
		PageSize:   s.PageSize(ctx, chatID),
	})
}

// PageSize resolves the chat's page size, falling back to the
// configured default when no preference is stored.
func (s *CatalogService) PageSize(ctx context.Context, chatID int64) int {
	op := "CatalogService.PageSize"

	prefs, err := s.prefs.GetPreferences(ctx, chatID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoRows) {
			slog.Error("got error from prefs.GetPreferences", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("op", op), slog.String("err", err.Error()))
		}
		return s.cfg.ItemsPerPage
	}
	if prefs.PageSize < 1 {
		return s.cfg.ItemsPerPage
	}
	return prefs.PageSize
}

func (s *CatalogService) OpenCreateForm(session *model.CatalogSession) {
	session.Form = &model.FormSession{Mode: model.FormModeCreate}
	session.Action = model.ExpectingFormField
}

// OpenEditForm fetches the full record first; a failed fetch fails the
// open and leaves the session without a form.
func (s *CatalogService) OpenEditForm(ctx context.Context, session *model.CatalogSession, bookID string) error {
	op := "CatalogService.OpenEditForm"
	rqID := utils.GetRequestIDFromCtx(ctx)

	book, err := s.gateway.GetBook(ctx, bookID)
	if err != nil {
		slog.Error("got error from gateway.GetBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("bookID", bookID))
		if errors.Is(err, booksApi.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	draft := model.DraftOf(book)
	session.Form = &model.FormSession{
		Mode:     model.FormModeEdit,
		BookID:   book.ID,
		Draft:    draft,
		Original: draft.Fingerprint(),
	}
	session.Action = model.ExpectingFormField

	return nil
}

func (s *CatalogService) CloseForm(session *model.CatalogSession) {
	session.Form = nil
	session.Action = model.DefaultAction
}

// SetFormField validates one entered value and, when it passes, writes
// it into the draft. The returned message is the inline field error;
// empty means the value was accepted.
func (s *CatalogService) SetFormField(session *model.CatalogSession, field model.FormField, value string) (string, error) {
	form := session.Form
	if form == nil {
		return "", ErrNoOpenForm
	}

	value = strings.TrimSpace(value)
	if msg := validate.Field(field, value); msg != "" {
		return msg, nil
	}

	switch field {
	case model.FieldTitle:
		form.Draft.Title = value
	case model.FieldAuthors:
		authors := make([]string, 0)
		for _, a := range strings.Split(value, ",") {
			if a = strings.TrimSpace(a); a != "" {
				authors = append(authors, a)
			}
		}
		form.Draft.Authors = authors
	case model.FieldPublishedDate:
		form.Draft.PublishedDate = value
	case model.FieldDescription:
		form.Draft.Description = value
	case model.FieldImage:
		form.Draft.ImageUrl = value
	}

	return "", nil
}

// SubmitForm gates, submits and closes the open form. Create and edit
// both end in a full authoritative reload in recency order, so
// store-assigned ids and timestamps win over anything local.
func (s *CatalogService) SubmitForm(ctx context.Context, session *model.CatalogSession) error {
	op := "CatalogService.SubmitForm"
	rqID := utils.GetRequestIDFromCtx(ctx)

	form := session.Form
	if form == nil {
		return ErrNoOpenForm
	}

	if fieldErrs := validate.Draft(form.Draft); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	if form.Mode == model.FormModeEdit && !form.Dirty() {
		return ErrNotModified
	}

	var err error
	switch form.Mode {
	case model.FormModeCreate:
		_, err = s.gateway.CreateBook(ctx, form.Draft)
	case model.FormModeEdit:
		err = s.gateway.UpdateBook(ctx, form.BookID, form.Draft)
	}
	if err != nil {
		slog.Error("got error from gateway while submitting form", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("mode", string(form.Mode)))
		if errors.Is(err, booksApi.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.LoadCatalog(ctx, session); err != nil {
		return err
	}
	session.SortDirection = model.SortNone
	s.CloseForm(session)

	return nil
}

// DeleteBook removes the record and re-fetches the full set instead of
// splicing locally, so concurrent external changes cannot drift the
// cache. An active sort stays active; the page index is re-validated
// against the refreshed set, never before the await.
func (s *CatalogService) DeleteBook(ctx context.Context, chatID int64, session *model.CatalogSession, bookID string) error {
	op := "CatalogService.DeleteBook"
	rqID := utils.GetRequestIDFromCtx(ctx)

	if err := s.gateway.DeleteBook(ctx, bookID); err != nil {
		slog.Error("got error from gateway.DeleteBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("bookID", bookID))
		if errors.Is(err, booksApi.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	books, err := s.gateway.ListBooks(ctx)
	if err != nil {
		slog.Error("got error from gateway.ListBooks after delete", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	session.Books = books
	session.SearchTerm = ""

	total := len(catalog.Apply(session.Books, session.SearchTerm, session.SortDirection))
	session.CurrentPage = catalog.ClampPage(total, session.CurrentPage, s.PageSize(ctx, chatID))

	return nil
}

// Recommendations looks up title suggestions and drops the candidates
// written in the chat's own language; only foreign-language matches are
// worth suggesting.
func (s *CatalogService) Recommendations(ctx context.Context, chatID int64, query string) ([]model.RecommendedBook, error) {
	op := "CatalogService.Recommendations"
	rqID := utils.GetRequestIDFromCtx(ctx)

	recs, err := s.gateway.RecommendByTitle(ctx, query)
	if err != nil {
		slog.Error("got error from gateway.RecommendByTitle", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return s.filterByLanguage(ctx, chatID, recs), nil
}

// Language resolves the chat's recommendation filter language, falling
// back to the configured default when no preference is stored.
func (s *CatalogService) Language(ctx context.Context, chatID int64) string {
	if prefs, err := s.prefs.GetPreferences(ctx, chatID); err == nil && prefs.Language != "" {
		return prefs.Language
	}
	return s.cfg.DefaultLanguage
}

func (s *CatalogService) filterByLanguage(ctx context.Context, chatID int64, recs []model.RecommendedBook) []model.RecommendedBook {
	local, err := language.Parse(s.Language(ctx, chatID))
	if err != nil {
		return recs
	}
	localBase, _ := local.Base()

	out := make([]model.RecommendedBook, 0, len(recs))
	for _, rec := range recs {
		tag, err := language.Parse(rec.Language)
		if err != nil {
			out = append(out, rec)
			continue
		}
		if base, _ := tag.Base(); base != localBase {
			out = append(out, rec)
		}
	}
	return out
}

// SetLanguage stores the chat's recommendation filter language after
// checking it is a valid BCP-47 tag.
func (s *CatalogService) SetLanguage(ctx context.Context, chatID int64, code string) error {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return err
	}
	base, _ := tag.Base()
	return s.prefs.UpsertLanguage(ctx, chatID, base.String())
}

// SetPageSize stores how many books the chat sees per page.
func (s *CatalogService) SetPageSize(ctx context.Context, chatID int64, size int) error {
	if size < minPageSize || size > maxPageSize {
		return ErrBadPageSize
	}
	return s.prefs.UpsertPageSize(ctx, chatID, size)
}

// UploadImage sends the file to storage and only swaps the working
// image URL in on success; a failed upload leaves the previously
// confirmed URL intact.
func (s *CatalogService) UploadImage(ctx context.Context, session *model.CatalogSession, file io.Reader, objectKey, contentType string, contentLength int64) (string, error) {
	op := "CatalogService.UploadImage"
	rqID := utils.GetRequestIDFromCtx(ctx)

	form := session.Form
	if form == nil {
		return "", ErrNoOpenForm
	}

	imageUrl, err := s.images.Upload(ctx, file, objectKey, contentType, contentLength)
	if err != nil {
		slog.Error("got error from images.Upload", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	form.Draft.ImageUrl = imageUrl
	return imageUrl, nil
}
