package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/data/session"
	"book_catalog_tgbot/internal/catalog"
	"book_catalog_tgbot/internal/converter/telebotConverter"
	"book_catalog_tgbot/internal/externalApi/booksApi"
	"book_catalog_tgbot/internal/lib/debounce"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/model/tg/tgCallback"
	"book_catalog_tgbot/internal/service/catalogService"
	"book_catalog_tgbot/utils"

	tele "gopkg.in/telebot.v4"
)

type CatalogService interface {
	LoadCatalog(ctx context.Context, session *model.CatalogSession) error
	ProjectPage(ctx context.Context, chatID int64, session *model.CatalogSession) catalog.RenderModel
	OpenCreateForm(session *model.CatalogSession)
	OpenEditForm(ctx context.Context, session *model.CatalogSession, bookID string) error
	CloseForm(session *model.CatalogSession)
	SetFormField(session *model.CatalogSession, field model.FormField, value string) (string, error)
	SubmitForm(ctx context.Context, session *model.CatalogSession) error
	DeleteBook(ctx context.Context, chatID int64, session *model.CatalogSession, bookID string) error
	Recommendations(ctx context.Context, chatID int64, query string) ([]model.RecommendedBook, error)
	Language(ctx context.Context, chatID int64) string
	SetLanguage(ctx context.Context, chatID int64, code string) error
	SetPageSize(ctx context.Context, chatID int64, size int) error
	UploadImage(ctx context.Context, session *model.CatalogSession, file io.Reader, objectKey, contentType string, contentLength int64) (string, error)
}

type Session interface {
	GetSession(ctx context.Context, chatID int64) (model.CatalogSession, error)
	SetSession(ctx context.Context, chatID int64, session model.CatalogSession) error
	DeleteSession(ctx context.Context, chatID int64) error
}

// Controller turns Telegram updates into catalog state transitions.
// Typed inputs (search, recommendations, the dirty re-render) go
// through per-chat debouncers so only the settled value acts.
type Controller struct {
	cfg            *config.Config
	session        Session
	catalogService CatalogService

	searchDebouncer    *debounce.Debouncer
	recommendDebouncer *debounce.Debouncer
	dirtyDebouncer     *debounce.Debouncer
}

func NewController(cfg *config.Config, catalogService CatalogService, session Session) *Controller {
	return &Controller{
		cfg:                cfg,
		catalogService:     catalogService,
		session:            session,
		searchDebouncer:    debounce.New(cfg.Debounce.Search),
		recommendDebouncer: debounce.New(cfg.Debounce.Recommend),
		dirtyDebouncer:     debounce.New(cfg.Debounce.Dirty),
	}
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func callbackPayload(c tele.Context, prefix string) string {
	return strings.TrimPrefix(c.Callback().Data, fmt.Sprintf("\f%s", prefix))
}

// staleListMsg reports whether a list callback arrived on a message
// that is no longer the live catalog message.
func staleListMsg(chatSession model.CatalogSession, msgID int) bool {
	return chatSession.LastMsgID != msgID
}

func (ctrl *Controller) getSessionFromTeleCtxOrStorage(ctx context.Context, c tele.Context) (model.CatalogSession, error) {
	op := "Controller.getSessionFromTeleCtxOrStorage"
	chatSession, ok := c.Get("session").(model.CatalogSession)
	if ok {
		return chatSession, nil
	}

	rqID := utils.GetRequestIDFromCtx(ctx)
	chatSession, err := ctrl.session.GetSession(ctx, c.Chat().ID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
		return model.CatalogSession{}, err
	}
	return chatSession, nil
}

func (ctrl *Controller) sendAutoDeleteMsg(c tele.Context, text string) error {
	msg, err := c.Bot().Send(c.Chat(), text)
	if err != nil {
		return err
	}

	time.AfterFunc(5*time.Second, func() {
		c.Bot().Delete(msg)
	})
	return nil
}

// requestErrMsg maps a gateway failure onto the toast shown to the
// user.
func (ctrl *Controller) requestErrMsg(err error) string {
	var statusErr *booksApi.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return internalErrMsg
}

// editCatalogPage redraws the catalog over the message the callback
// came from and marks it as the live list message.
func (ctrl *Controller) editCatalogPage(ctx context.Context, c tele.Context, chatSession *model.CatalogSession) error {
	chatSession.LastMsgID = c.Message().ID
	if err := ctrl.session.SetSession(ctx, c.Chat().ID, *chatSession); err != nil {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	return c.Edit(telebotConverter.CatalogPage(ctrl.catalogService.ProjectPage(ctx, c.Chat().ID, chatSession)))
}

func (ctrl *Controller) Start(c tele.Context) error {
	op := "Controller.Start"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	// a fresh open drops whatever form or search was in flight
	_ = ctrl.session.DeleteSession(ctx, chatID)

	chatSession := model.CatalogSession{CurrentPage: 1}
	if err := ctrl.catalogService.LoadCatalog(ctx, &chatSession); err != nil {
		slog.Error("got error from catalogService.LoadCatalog", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, ctrl.requestErrMsg(err))
	}

	text, markup := telebotConverter.CatalogPage(ctrl.catalogService.ProjectPage(ctx, chatID, &chatSession))

	msg, err := c.Bot().Send(c.Recipient(), text, markup)
	if err != nil {
		return err
	}

	chatSession.LastMsgID = msg.ID
	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return nil
}

func (ctrl *Controller) Help(c tele.Context) error {
	return c.Reply("This is your book catalog.\n\nSend /start to open it. Type any text to search by title, use the buttons to sort, page through, add, edit or delete books.\n\nWhile adding a book, title suggestions in foreign languages appear under the form. Set the language they are filtered against with /language, and the number of books per page with /pagesize.")
}

// ProcessSearchInput runs for free text typed while the catalog is
// open. The term only applies once typing has settled; the selected
// page survives the term change on purpose.
func (ctrl *Controller) ProcessSearchInput(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	term := c.Message().Text
	chatID := c.Chat().ID

	ctrl.searchDebouncer.Do(chatKey(chatID), func(token uint64) {
		ctrl.applySearch(context.WithoutCancel(ctx), c, token, term)
	})

	return nil
}

func (ctrl *Controller) applySearch(ctx context.Context, c tele.Context, token uint64, term string) {
	op := "Controller.applySearch"
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	if token != ctrl.searchDebouncer.Current(chatKey(chatID)) {
		return
	}

	chatSession, err := ctrl.session.GetSession(ctx, chatID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
		return
	}
	if chatSession.LastMsgID == 0 {
		return
	}

	chatSession.SearchTerm = term
	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return
	}

	text, markup := telebotConverter.CatalogPage(ctrl.catalogService.ProjectPage(ctx, chatID, &chatSession))

	listMsg := tele.StoredMessage{MessageID: strconv.Itoa(chatSession.LastMsgID), ChatID: chatID}
	if _, err := c.Bot().Edit(listMsg, text, markup); err != nil {
		slog.Error("error while editing catalog message", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
}

func (ctrl *Controller) ProcessToPage(c tele.Context) error {
	op := "Controller.ProcessToPage"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	pageStr := callbackPayload(c, tgCallback.ToPage)
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		slog.Error(
			"error while converting page from callback",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.String("pageStr", pageStr),
		)
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}
	if staleListMsg(chatSession, c.Message().ID) {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	if page < 1 {
		page = 1
	}
	chatSession.CurrentPage = page

	return ctrl.editCatalogPage(ctx, c, &chatSession)
}

// ProcessSort flips the tapped direction on, or off when it was
// already active, which drops the list back to recency order.
func (ctrl *Controller) ProcessSort(c tele.Context, clicked model.SortDirection) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}
	if staleListMsg(chatSession, c.Message().ID) {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	chatSession.SortDirection = catalog.ToggleSort(chatSession.SortDirection, clicked)

	return ctrl.editCatalogPage(ctx, c, &chatSession)
}

// InitDeleteBook swaps the list for a confirmation dialog; nothing is
// deleted until the dialog is confirmed.
func (ctrl *Controller) InitDeleteBook(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	bookID := callbackPayload(c, tgCallback.DeleteBook)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}
	if staleListMsg(chatSession, c.Message().ID) {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	for _, book := range chatSession.Books {
		if book.ID == bookID {
			return c.Edit(telebotConverter.ConfirmDeleteDialog(book))
		}
	}

	return ctrl.sendAutoDeleteMsg(c, bookNotFound)
}

func (ctrl *Controller) ConfirmDelete(c tele.Context) error {
	op := "Controller.ConfirmDelete"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID
	bookID := callbackPayload(c, tgCallback.ConfirmDelete)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	if err := ctrl.catalogService.DeleteBook(ctx, chatID, &chatSession, bookID); err != nil {
		if errors.Is(err, catalogService.ErrNotFound) {
			return ctrl.sendAutoDeleteMsg(c, bookNotFound)
		}
		slog.Error("got error from catalogService.DeleteBook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("bookID", bookID))
		return ctrl.sendAutoDeleteMsg(c, ctrl.requestErrMsg(err))
	}

	if err := ctrl.editCatalogPage(ctx, c, &chatSession); err != nil {
		return err
	}
	return ctrl.sendAutoDeleteMsg(c, bookDeleted)
}

func (ctrl *Controller) CancelDelete(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	return ctrl.editCatalogPage(ctx, c, &chatSession)
}

// SetPageSize handles "/pagesize N".
func (ctrl *Controller) SetPageSize(c tele.Context) error {
	op := "Controller.SetPageSize"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	size, err := strconv.Atoi(strings.TrimSpace(c.Message().Payload))
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, invalidPageSize)
	}

	if err := ctrl.catalogService.SetPageSize(ctx, chatID, size); err != nil {
		if errors.Is(err, catalogService.ErrBadPageSize) {
			return ctrl.sendAutoDeleteMsg(c, invalidPageSize)
		}
		slog.Error("got error from catalogService.SetPageSize", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	return ctrl.sendAutoDeleteMsg(c, pageSizeSaved)
}

func (ctrl *Controller) InitSetLanguage(c tele.Context) error {
	op := "Controller.InitSetLanguage"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	chatSession.Action = model.ExpectingLanguage
	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	return c.Send(telebotConverter.LanguageMenu(ctrl.catalogService.Language(ctx, chatID)))
}

func (ctrl *Controller) ProcessLanguageInput(c tele.Context) error {
	op := "Controller.ProcessLanguageInput"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	if err := ctrl.catalogService.SetLanguage(ctx, chatID, c.Message().Text); err != nil {
		return ctrl.sendAutoDeleteMsg(c, invalidLanguage)
	}

	chatSession.Action = model.DefaultAction
	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	return ctrl.sendAutoDeleteMsg(c, languageSaved)
}
