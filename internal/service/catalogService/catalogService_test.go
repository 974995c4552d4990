package catalogService

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/repository"
	"book_catalog_tgbot/internal/service/catalogService/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type catalogServiceSuite struct {
	suite.Suite

	mockCtrl *gomock.Controller
	service  *CatalogService
	cfg      *config.Config
	gateway  *mocks.MockGateway
	images   *mocks.MockImageStorage
	prefs    *mocks.MockPreferencesRepo
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(catalogServiceSuite))
}

func (s *catalogServiceSuite) SetupSuite() {
	s.cfg = &config.Config{
		ItemsPerPage:    6,
		DefaultLanguage: "vi",
	}
	s.mockCtrl = gomock.NewController(s.T())
}

func (s *catalogServiceSuite) SetupTest() {
	s.gateway = mocks.NewMockGateway(s.mockCtrl)
	s.images = mocks.NewMockImageStorage(s.mockCtrl)
	s.prefs = mocks.NewMockPreferencesRepo(s.mockCtrl)

	s.service = New(s.cfg, s.gateway, s.images, s.prefs)
}

func validDraft() model.BookDraft {
	return model.BookDraft{
		Title:         "The Go Programming Language",
		Authors:       []string{"Alan Donovan", "Brian Kernighan"},
		PublishedDate: "2015-10-26",
		ImageUrl:      "https://images.example.com/gopl.jpg",
		Description:   "A book about Go",
	}
}

func bookFixture(id, title string, createdAt time.Time) model.Book {
	return model.Book{
		ID:            id,
		Title:         title,
		Authors:       []string{"Author"},
		PublishedDate: "2020-01-01",
		ImageUrl:      "https://images.example.com/" + id + ".jpg",
		Description:   "description",
		CreatedAt:     createdAt,
	}
}

func (s *catalogServiceSuite) Test_LoadCatalog_Success() {
	ctx := context.Background()
	now := time.Now()
	books := []model.Book{
		bookFixture("1", "Zeta", now.Add(-time.Hour)),
		bookFixture("2", "Alpha", now),
	}
	session := &model.CatalogSession{SearchTerm: "zeta"}

	s.gateway.EXPECT().
		ListBooks(ctx).
		Return(books, nil)

	err := s.service.LoadCatalog(ctx, session)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), books, session.Books)
	assert.Equal(s.T(), "", session.SearchTerm)
	assert.Equal(s.T(), 1, session.CurrentPage)
}

func (s *catalogServiceSuite) Test_LoadCatalog_GatewayErr() {
	ctx := context.Background()
	expectedErr := errors.New("some error")
	session := &model.CatalogSession{
		Books:      []model.Book{bookFixture("1", "Zeta", time.Now())},
		SearchTerm: "zeta",
	}

	s.gateway.EXPECT().
		ListBooks(ctx).
		Return(nil, expectedErr)

	err := s.service.LoadCatalog(ctx, session)

	assert.Equal(s.T(), expectedErr, err)
	assert.Len(s.T(), session.Books, 1)
	assert.Equal(s.T(), "zeta", session.SearchTerm)
}

func (s *catalogServiceSuite) Test_PageSize_FromPreferences() {
	ctx := context.Background()
	var chatID int64 = 1

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{ChatID: chatID, PageSize: 3}, nil)

	assert.Equal(s.T(), 3, s.service.PageSize(ctx, chatID))
}

func (s *catalogServiceSuite) Test_PageSize_FallbackOnNoRows() {
	ctx := context.Background()
	var chatID int64 = 1

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{}, repository.ErrNoRows)

	assert.Equal(s.T(), s.cfg.ItemsPerPage, s.service.PageSize(ctx, chatID))
}

func (s *catalogServiceSuite) Test_OpenEditForm_Success() {
	ctx := context.Background()
	book := bookFixture("42", "Zeta", time.Now())
	session := &model.CatalogSession{}

	s.gateway.EXPECT().
		GetBook(ctx, "42").
		Return(book, nil)

	err := s.service.OpenEditForm(ctx, session, "42")

	assert.Nil(s.T(), err)
	assert.NotNil(s.T(), session.Form)
	assert.Equal(s.T(), model.FormModeEdit, session.Form.Mode)
	assert.Equal(s.T(), "42", session.Form.BookID)
	assert.Equal(s.T(), model.DraftOf(book), session.Form.Draft)
	assert.Equal(s.T(), model.ExpectingFormField, session.Action)
	assert.False(s.T(), session.Form.Dirty())
}

func (s *catalogServiceSuite) Test_OpenEditForm_GatewayErr() {
	ctx := context.Background()
	expectedErr := errors.New("some error")
	session := &model.CatalogSession{}

	s.gateway.EXPECT().
		GetBook(ctx, "42").
		Return(model.Book{}, expectedErr)

	err := s.service.OpenEditForm(ctx, session, "42")

	assert.Equal(s.T(), expectedErr, err)
	assert.Nil(s.T(), session.Form)
	assert.Equal(s.T(), model.DefaultAction, session.Action)
}

func (s *catalogServiceSuite) Test_SetFormField_SplitsAuthors() {
	session := &model.CatalogSession{Form: &model.FormSession{Mode: model.FormModeCreate}}

	msg, err := s.service.SetFormField(session, model.FieldAuthors, " Alan Donovan , Brian Kernighan ,")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "", msg)
	assert.Equal(s.T(), []string{"Alan Donovan", "Brian Kernighan"}, session.Form.Draft.Authors)
}

func (s *catalogServiceSuite) Test_SetFormField_RejectsInvalidValue() {
	session := &model.CatalogSession{Form: &model.FormSession{Mode: model.FormModeCreate}}

	msg, err := s.service.SetFormField(session, model.FieldPublishedDate, "not-a-date")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "Published date must be a date in the form 2006-01-02", msg)
	assert.Equal(s.T(), "", session.Form.Draft.PublishedDate)
}

func (s *catalogServiceSuite) Test_SetFormField_NoOpenForm() {
	session := &model.CatalogSession{}

	_, err := s.service.SetFormField(session, model.FieldTitle, "title")

	assert.Equal(s.T(), ErrNoOpenForm, err)
}

func (s *catalogServiceSuite) Test_SubmitForm_CreateReloadsInRecencyOrder() {
	ctx := context.Background()
	draft := validDraft()
	now := time.Now()
	created := bookFixture("3", draft.Title, now)
	reloaded := []model.Book{
		bookFixture("1", "Zeta", now.Add(-2*time.Hour)),
		bookFixture("2", "Alpha", now.Add(-time.Hour)),
		created,
	}
	session := &model.CatalogSession{
		SortDirection: model.SortAsc,
		SearchTerm:    "zeta",
		CurrentPage:   1,
		Action:        model.ExpectingFormField,
		Form:          &model.FormSession{Mode: model.FormModeCreate, Draft: draft},
	}

	s.gateway.EXPECT().
		CreateBook(ctx, draft).
		Return(created, nil)

	s.gateway.EXPECT().
		ListBooks(ctx).
		Return(reloaded, nil)

	err := s.service.SubmitForm(ctx, session)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), reloaded, session.Books)
	assert.Equal(s.T(), model.SortNone, session.SortDirection)
	assert.Equal(s.T(), "", session.SearchTerm)
	assert.Nil(s.T(), session.Form)
	assert.Equal(s.T(), model.DefaultAction, session.Action)
}

func (s *catalogServiceSuite) Test_SubmitForm_ValidationErrBlocksGateway() {
	ctx := context.Background()
	draft := validDraft()
	draft.Title = ""
	draft.PublishedDate = "tomorrow"
	session := &model.CatalogSession{
		Form: &model.FormSession{Mode: model.FormModeCreate, Draft: draft},
	}

	err := s.service.SubmitForm(ctx, session)

	var validationErr *ValidationError
	assert.True(s.T(), errors.As(err, &validationErr))
	assert.Equal(s.T(), "Title is required", validationErr.Fields[model.FieldTitle])
	assert.Equal(s.T(), "Published date must be a date in the form 2006-01-02", validationErr.Fields[model.FieldPublishedDate])
	assert.NotNil(s.T(), session.Form)
}

func (s *catalogServiceSuite) Test_SubmitForm_EditUnchangedNotModified() {
	ctx := context.Background()
	draft := validDraft()
	session := &model.CatalogSession{
		Form: &model.FormSession{
			Mode:     model.FormModeEdit,
			BookID:   "42",
			Draft:    draft,
			Original: draft.Fingerprint(),
		},
	}

	err := s.service.SubmitForm(ctx, session)

	assert.Equal(s.T(), ErrNotModified, err)
	assert.NotNil(s.T(), session.Form)
}

func (s *catalogServiceSuite) Test_SubmitForm_EditChangedAndRevertedNotModified() {
	ctx := context.Background()
	draft := validDraft()
	originalTitle := draft.Title
	session := &model.CatalogSession{
		Form: &model.FormSession{
			Mode:     model.FormModeEdit,
			BookID:   "42",
			Draft:    draft,
			Original: draft.Fingerprint(),
		},
	}

	_, err := s.service.SetFormField(session, model.FieldTitle, "Changed Title")
	assert.Nil(s.T(), err)
	assert.True(s.T(), session.Form.Dirty())

	_, err = s.service.SetFormField(session, model.FieldTitle, originalTitle)
	assert.Nil(s.T(), err)
	assert.False(s.T(), session.Form.Dirty())

	err = s.service.SubmitForm(ctx, session)

	assert.Equal(s.T(), ErrNotModified, err)
}

func (s *catalogServiceSuite) Test_SubmitForm_EditSuccess() {
	ctx := context.Background()
	draft := validDraft()
	original := draft.Fingerprint()
	draft.Title = "Changed Title"
	reloaded := []model.Book{bookFixture("42", draft.Title, time.Now())}
	session := &model.CatalogSession{
		SortDirection: model.SortDesc,
		Form: &model.FormSession{
			Mode:     model.FormModeEdit,
			BookID:   "42",
			Draft:    draft,
			Original: original,
		},
	}

	s.gateway.EXPECT().
		UpdateBook(ctx, "42", draft).
		Return(nil)

	s.gateway.EXPECT().
		ListBooks(ctx).
		Return(reloaded, nil)

	err := s.service.SubmitForm(ctx, session)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), reloaded, session.Books)
	assert.Equal(s.T(), model.SortNone, session.SortDirection)
	assert.Nil(s.T(), session.Form)
}

func (s *catalogServiceSuite) Test_SubmitForm_GatewayErrKeepsForm() {
	ctx := context.Background()
	draft := validDraft()
	expectedErr := errors.New("some error")
	session := &model.CatalogSession{
		Books: []model.Book{bookFixture("1", "Zeta", time.Now())},
		Form:  &model.FormSession{Mode: model.FormModeCreate, Draft: draft},
	}

	s.gateway.EXPECT().
		CreateBook(ctx, draft).
		Return(model.Book{}, expectedErr)

	err := s.service.SubmitForm(ctx, session)

	assert.Equal(s.T(), expectedErr, err)
	assert.NotNil(s.T(), session.Form)
	assert.Len(s.T(), session.Books, 1)
}

func (s *catalogServiceSuite) Test_DeleteBook_KeepsSortAndClampsPage() {
	ctx := context.Background()
	var chatID int64 = 1
	now := time.Now()
	remaining := []model.Book{
		bookFixture("1", "Alpha", now.Add(-2*time.Hour)),
		bookFixture("2", "Beta", now.Add(-time.Hour)),
	}
	session := &model.CatalogSession{
		Books: []model.Book{
			bookFixture("1", "Alpha", now.Add(-2*time.Hour)),
			bookFixture("2", "Beta", now.Add(-time.Hour)),
			bookFixture("3", "Gamma", now),
		},
		SortDirection: model.SortAsc,
		CurrentPage:   3,
	}

	s.gateway.EXPECT().
		DeleteBook(ctx, "3").
		Return(nil)

	s.gateway.EXPECT().
		ListBooks(ctx).
		Return(remaining, nil)

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{ChatID: chatID, PageSize: 1}, nil)

	err := s.service.DeleteBook(ctx, chatID, session, "3")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), remaining, session.Books)
	assert.Equal(s.T(), model.SortAsc, session.SortDirection)
	assert.Equal(s.T(), 2, session.CurrentPage)
}

func (s *catalogServiceSuite) Test_DeleteBook_GatewayErrKeepsSession() {
	ctx := context.Background()
	var chatID int64 = 1
	expectedErr := errors.New("some error")
	session := &model.CatalogSession{
		Books:       []model.Book{bookFixture("1", "Alpha", time.Now())},
		CurrentPage: 1,
	}

	s.gateway.EXPECT().
		DeleteBook(ctx, "1").
		Return(expectedErr)

	err := s.service.DeleteBook(ctx, chatID, session, "1")

	assert.Equal(s.T(), expectedErr, err)
	assert.Len(s.T(), session.Books, 1)
}

func (s *catalogServiceSuite) Test_Recommendations_FiltersLocalLanguage() {
	ctx := context.Background()
	var chatID int64 = 1
	recs := []model.RecommendedBook{
		{Title: "Dế Mèn phiêu lưu ký", Language: "vi"},
		{Title: "The Hobbit", Language: "en"},
		{Title: "Le Petit Prince", Language: "fr"},
	}

	s.gateway.EXPECT().
		RecommendByTitle(ctx, "adventure").
		Return(recs, nil)

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{}, repository.ErrNoRows)

	res, err := s.service.Recommendations(ctx, chatID, "adventure")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), []model.RecommendedBook{
		{Title: "The Hobbit", Language: "en"},
		{Title: "Le Petit Prince", Language: "fr"},
	}, res)
}

func (s *catalogServiceSuite) Test_Recommendations_UsesChatLanguage() {
	ctx := context.Background()
	var chatID int64 = 1
	recs := []model.RecommendedBook{
		{Title: "The Hobbit", Language: "en-US"},
		{Title: "Le Petit Prince", Language: "fr"},
	}

	s.gateway.EXPECT().
		RecommendByTitle(ctx, "prince").
		Return(recs, nil)

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{ChatID: chatID, Language: "en"}, nil)

	res, err := s.service.Recommendations(ctx, chatID, "prince")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), []model.RecommendedBook{{Title: "Le Petit Prince", Language: "fr"}}, res)
}

func (s *catalogServiceSuite) Test_Recommendations_KeepsUnparseableLanguage() {
	ctx := context.Background()
	var chatID int64 = 1
	recs := []model.RecommendedBook{{Title: "Mystery", Language: "???"}}

	s.gateway.EXPECT().
		RecommendByTitle(ctx, "mystery").
		Return(recs, nil)

	s.prefs.EXPECT().
		GetPreferences(ctx, chatID).
		Return(model.ChatPreferences{}, repository.ErrNoRows)

	res, err := s.service.Recommendations(ctx, chatID, "mystery")

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), recs, res)
}

func (s *catalogServiceSuite) Test_SetLanguage_Success() {
	ctx := context.Background()
	var chatID int64 = 1

	s.prefs.EXPECT().
		UpsertLanguage(ctx, chatID, "en").
		Return(nil)

	err := s.service.SetLanguage(ctx, chatID, " en-US ")

	assert.Nil(s.T(), err)
}

func (s *catalogServiceSuite) Test_SetPageSize_Success() {
	ctx := context.Background()
	var chatID int64 = 1

	s.prefs.EXPECT().
		UpsertPageSize(ctx, chatID, 10).
		Return(nil)

	err := s.service.SetPageSize(ctx, chatID, 10)

	assert.Nil(s.T(), err)
}

func (s *catalogServiceSuite) Test_SetPageSize_OutOfRange() {
	ctx := context.Background()
	var chatID int64 = 1

	assert.Equal(s.T(), ErrBadPageSize, s.service.SetPageSize(ctx, chatID, 0))
	assert.Equal(s.T(), ErrBadPageSize, s.service.SetPageSize(ctx, chatID, 21))
}

func (s *catalogServiceSuite) Test_SetLanguage_InvalidTag() {
	ctx := context.Background()
	var chatID int64 = 1

	err := s.service.SetLanguage(ctx, chatID, "not a language")

	assert.NotNil(s.T(), err)
}

func (s *catalogServiceSuite) Test_UploadImage_Success() {
	ctx := context.Background()
	reader := bytes.NewReader([]byte("image bytes"))
	session := &model.CatalogSession{Form: &model.FormSession{Mode: model.FormModeCreate}}
	uploadedUrl := "https://images.example.com/covers/key.jpg"

	s.images.EXPECT().
		Upload(ctx, reader, "covers/key.jpg", "image/jpeg", int64(11)).
		Return(uploadedUrl, nil)

	res, err := s.service.UploadImage(ctx, session, reader, "covers/key.jpg", "image/jpeg", 11)

	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uploadedUrl, res)
	assert.Equal(s.T(), uploadedUrl, session.Form.Draft.ImageUrl)
}

func (s *catalogServiceSuite) Test_UploadImage_FailureKeepsPriorUrl() {
	ctx := context.Background()
	reader := bytes.NewReader([]byte("image bytes"))
	expectedErr := errors.New("some error")
	priorUrl := "https://images.example.com/covers/old.jpg"
	session := &model.CatalogSession{
		Form: &model.FormSession{
			Mode:  model.FormModeEdit,
			Draft: model.BookDraft{ImageUrl: priorUrl},
		},
	}

	s.images.EXPECT().
		Upload(ctx, reader, "covers/new.jpg", "image/jpeg", int64(11)).
		Return("", expectedErr)

	_, err := s.service.UploadImage(ctx, session, reader, "covers/new.jpg", "image/jpeg", 11)

	assert.Equal(s.T(), expectedErr, err)
	assert.Equal(s.T(), priorUrl, session.Form.Draft.ImageUrl)
}

func (s *catalogServiceSuite) Test_UploadImage_NoOpenForm() {
	ctx := context.Background()
	session := &model.CatalogSession{}

	_, err := s.service.UploadImage(ctx, session, bytes.NewReader(nil), "key", "image/jpeg", 0)

	assert.Equal(s.T(), ErrNoOpenForm, err)
}
