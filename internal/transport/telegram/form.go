package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"book_catalog_tgbot/internal/converter/telebotConverter"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/model/tg/tgCallback"
	"book_catalog_tgbot/internal/service/catalogService"
	"book_catalog_tgbot/utils"

	tele "gopkg.in/telebot.v4"
)

const maxRecommendations = 6

func (ctrl *Controller) OpenCreateForm(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	ctrl.catalogService.OpenCreateForm(&chatSession)

	return ctrl.sendFormCard(ctx, c, &chatSession)
}

func (ctrl *Controller) OpenEditForm(c tele.Context) error {
	op := "Controller.OpenEditForm"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	bookID := callbackPayload(c, tgCallback.OpenEditForm)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	if err := ctrl.catalogService.OpenEditForm(ctx, &chatSession, bookID); err != nil {
		if errors.Is(err, catalogService.ErrNotFound) {
			return ctrl.sendAutoDeleteMsg(c, bookNotFound)
		}
		slog.Error("got error from catalogService.OpenEditForm", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("bookID", bookID))
		return ctrl.sendAutoDeleteMsg(c, ctrl.requestErrMsg(err))
	}

	return ctrl.sendFormCard(ctx, c, &chatSession)
}

// sendFormCard posts the form as its own message so the catalog stays
// on screen behind it.
func (ctrl *Controller) sendFormCard(ctx context.Context, c tele.Context, chatSession *model.CatalogSession) error {
	op := "Controller.sendFormCard"
	rqID := utils.GetRequestIDFromCtx(ctx)

	text, markup := telebotConverter.FormCard(chatSession.Form)

	msg, err := c.Bot().Send(c.Recipient(), text, markup)
	if err != nil {
		return err
	}

	chatSession.Form.FormMsgID = msg.ID
	if err := ctrl.session.SetSession(ctx, c.Chat().ID, *chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	return nil
}

func (ctrl *Controller) editFormCard(ctx context.Context, c tele.Context, chatSession *model.CatalogSession) error {
	if err := ctrl.session.SetSession(ctx, c.Chat().ID, *chatSession); err != nil {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	text, markup := telebotConverter.FormCard(chatSession.Form)
	formMsg := tele.StoredMessage{MessageID: strconv.Itoa(chatSession.Form.FormMsgID), ChatID: c.Chat().ID}
	_, err := c.Bot().Edit(formMsg, text, markup)
	return err
}

func (ctrl *Controller) EditField(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	field := model.FormField(callbackPayload(c, tgCallback.EditField))

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil || chatSession.Form == nil {
		return ctrl.sendAutoDeleteMsg(c, noOpenFormMsg)
	}

	chatSession.Form.Expecting = field

	return ctrl.editFormCard(ctx, c, &chatSession)
}

// ProcessFormFieldInput accepts the typed value for the field the form
// is waiting on. Rejected values leave the draft untouched; accepted
// ones re-render the card once typing settles, and a title typed in
// create mode additionally schedules a suggestion lookup.
func (ctrl *Controller) ProcessFormFieldInput(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	chatID := c.Chat().ID
	value := c.Message().Text

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil || chatSession.Form == nil {
		return ctrl.sendAutoDeleteMsg(c, noOpenFormMsg)
	}

	field := chatSession.Form.Expecting
	if field == "" {
		return ctrl.sendAutoDeleteMsg(c, chooseFieldFirst)
	}

	msg, err := ctrl.catalogService.SetFormField(&chatSession, field, value)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, noOpenFormMsg)
	}
	if msg != "" {
		return ctrl.sendAutoDeleteMsg(c, msg)
	}

	chatSession.Form.Expecting = ""
	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	if chatSession.Form.Mode == model.FormModeCreate && field == model.FieldTitle {
		title := chatSession.Form.Draft.Title
		ctrl.recommendDebouncer.Do(chatKey(chatID), func(token uint64) {
			ctrl.lookupRecommendations(context.WithoutCancel(ctx), c, token, title)
		})
	}

	ctrl.dirtyDebouncer.Do(chatKey(chatID), func(token uint64) {
		ctrl.refreshFormCard(context.WithoutCancel(ctx), c, token)
	})

	return nil
}

// refreshFormCard redraws the card from the stored session after the
// dirty window; rapid consecutive inputs collapse into one redraw.
func (ctrl *Controller) refreshFormCard(ctx context.Context, c tele.Context, token uint64) {
	op := "Controller.refreshFormCard"
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	if token != ctrl.dirtyDebouncer.Current(chatKey(chatID)) {
		return
	}

	chatSession, err := ctrl.session.GetSession(ctx, chatID)
	if err != nil || chatSession.Form == nil {
		return
	}

	text, markup := telebotConverter.FormCard(chatSession.Form)
	formMsg := tele.StoredMessage{MessageID: strconv.Itoa(chatSession.Form.FormMsgID), ChatID: chatID}
	if _, err := c.Bot().Edit(formMsg, text, markup); err != nil {
		slog.Error("error while editing form message", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
}

// lookupRecommendations resolves title suggestions for the settled
// title. The token is checked again after the call returns so a slow
// response cannot clobber a newer lookup.
func (ctrl *Controller) lookupRecommendations(ctx context.Context, c tele.Context, token uint64, title string) {
	op := "Controller.lookupRecommendations"
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	if token != ctrl.recommendDebouncer.Current(chatKey(chatID)) {
		return
	}

	recs, err := ctrl.catalogService.Recommendations(ctx, chatID, title)
	if err != nil {
		slog.Error("got error from catalogService.Recommendations", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return
	}

	if token != ctrl.recommendDebouncer.Current(chatKey(chatID)) {
		return
	}

	chatSession, err := ctrl.session.GetSession(ctx, chatID)
	if err != nil || chatSession.Form == nil || chatSession.Form.Mode != model.FormModeCreate {
		return
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	chatSession.Form.Recommendations = recs

	if err := ctrl.session.SetSession(ctx, chatID, chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return
	}

	text, markup := telebotConverter.FormCard(chatSession.Form)
	formMsg := tele.StoredMessage{MessageID: strconv.Itoa(chatSession.Form.FormMsgID), ChatID: chatID}
	if _, err := c.Bot().Edit(formMsg, text, markup); err != nil {
		slog.Error("error while editing form message", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
}

func (ctrl *Controller) PickRecommend(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil || chatSession.Form == nil {
		return ctrl.sendAutoDeleteMsg(c, noOpenFormMsg)
	}

	idx, err := strconv.Atoi(callbackPayload(c, tgCallback.PickRecommend))
	if err != nil || idx < 0 || idx >= len(chatSession.Form.Recommendations) {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	chatSession.Form.Draft.Title = chatSession.Form.Recommendations[idx].Title
	chatSession.Form.Recommendations = nil

	return ctrl.editFormCard(ctx, c, &chatSession)
}

func (ctrl *Controller) SaveForm(c tele.Context) error {
	op := "Controller.SaveForm"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil || chatSession.Form == nil {
		return ctrl.sendAutoDeleteMsg(c, noOpenFormMsg)
	}

	err = ctrl.catalogService.SubmitForm(ctx, &chatSession)

	var validationErr *catalogService.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ctrl.sendAutoDeleteMsg(c, telebotConverter.ValidationSummary(validationErr.Fields))
	case errors.Is(err, catalogService.ErrNotModified):
		return ctrl.sendAutoDeleteMsg(c, noChangesToSave)
	case errors.Is(err, catalogService.ErrNotFound):
		return ctrl.sendAutoDeleteMsg(c, bookNotFound)
	case err != nil:
		slog.Error("got error from catalogService.SubmitForm", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, ctrl.requestErrMsg(err))
	}

	if err := ctrl.editCatalogPage(ctx, c, &chatSession); err != nil {
		return err
	}
	return ctrl.sendAutoDeleteMsg(c, bookSaved)
}

func (ctrl *Controller) CancelForm(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return ctrl.sendAutoDeleteMsg(c, requestTooOld)
	}

	ctrl.catalogService.CloseForm(&chatSession)

	return ctrl.editCatalogPage(ctx, c, &chatSession)
}

// ProcessPhoto uploads a sent photo as the cover image while the form
// is waiting on the image field. A failed upload keeps whatever image
// URL the draft already had.
func (ctrl *Controller) ProcessPhoto(c tele.Context) error {
	op := "Controller.ProcessPhoto"
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)
	chatID := c.Chat().ID

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil || chatSession.Form == nil || chatSession.Form.Expecting != model.FieldImage {
		return ctrl.sendAutoDeleteMsg(c, sendPhotoForm)
	}

	photo := c.Message().Photo
	if photo == nil {
		return nil
	}

	file, err := c.Bot().File(&photo.File)
	if err != nil {
		slog.Error("error while downloading photo from telegram", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}
	defer file.Close()

	objectKey := fmt.Sprintf("covers/%d/%s.jpg", chatID, photo.UniqueID)
	if _, err := ctrl.catalogService.UploadImage(ctx, &chatSession, file, objectKey, "image/jpeg", int64(photo.FileSize)); err != nil {
		return ctrl.sendAutoDeleteMsg(c, internalErrMsg)
	}

	chatSession.Form.Expecting = ""

	return ctrl.editFormCard(ctx, c, &chatSession)
}
