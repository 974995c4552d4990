package tgbot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"book_catalog_tgbot/config"
	"book_catalog_tgbot/data/session"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/model/tg/tgCallback"
	"book_catalog_tgbot/internal/transport/telegram"
	"book_catalog_tgbot/utils"

	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

type Session interface {
	GetSession(ctx context.Context, chatID int64) (model.CatalogSession, error)
	SetSession(ctx context.Context, chatID int64, session model.CatalogSession) error
}

type TGBot struct {
	bot     *tele.Bot
	ctrl    *telegram.Controller
	session Session
}

func New(cfg *config.Config, ctrl *telegram.Controller, session Session) *TGBot {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: time.Duration(cfg.Telegram.UpdTimeout) * time.Second},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TGBot{bot: b, ctrl: ctrl, session: session}
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover())

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!")
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

func (b *TGBot) setupRoutes() {
	// commands
	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/help", b.ctrl.Help)
	b.bot.Handle("/language", b.ctrl.InitSetLanguage)
	b.bot.Handle("/pagesize", b.ctrl.SetPageSize)

	// text is dispatched on what the chat is currently waiting for
	b.bot.Handle(tele.OnText, func(c tele.Context) error {
		ctx := utils.CreateCtxWithRqID(c)
		rqID := utils.GetRequestIDFromCtx(ctx)
		chatSession, err := b.session.GetSession(ctx, c.Chat().ID)
		if err != nil && !errors.Is(err, session.ErrNotFound) {
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
			return c.Send("something went wrong...")
		}

		c.Set("session", chatSession)

		switch chatSession.Action {
		case model.ExpectingFormField:
			return b.ctrl.ProcessFormFieldInput(c)
		case model.ExpectingLanguage:
			return b.ctrl.ProcessLanguageInput(c)
		default:
			return b.ctrl.ProcessSearchInput(c)
		}
	})

	b.bot.Handle(tele.OnPhoto, b.ctrl.ProcessPhoto)

	// callbacks
	b.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		callbackBtnText := strings.TrimPrefix(c.Callback().Data, "\f")

		switch {
		case callbackBtnText == tgCallback.SortAsc:
			return b.ctrl.ProcessSort(c, model.SortAsc)
		case callbackBtnText == tgCallback.SortDesc:
			return b.ctrl.ProcessSort(c, model.SortDesc)
		case callbackBtnText == tgCallback.OpenCreateForm:
			return b.ctrl.OpenCreateForm(c)
		case callbackBtnText == tgCallback.SaveForm:
			return b.ctrl.SaveForm(c)
		case callbackBtnText == tgCallback.CancelForm:
			return b.ctrl.CancelForm(c)
		case callbackBtnText == tgCallback.CancelDelete:
			return b.ctrl.CancelDelete(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.ToPage):
			return b.ctrl.ProcessToPage(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.OpenEditForm):
			return b.ctrl.OpenEditForm(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.EditField):
			return b.ctrl.EditField(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.PickRecommend):
			return b.ctrl.PickRecommend(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.ConfirmDelete):
			return b.ctrl.ConfirmDelete(c)
		case strings.HasPrefix(callbackBtnText, tgCallback.DeleteBook):
			return b.ctrl.InitDeleteBook(c)
		case callbackBtnText == tgCallback.PageNumber:
			return nil
		default:
			return c.Send("unknown callback")
		}
	})
}
