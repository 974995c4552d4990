package telegram

import (
	"testing"

	"book_catalog_tgbot/internal/model"

	"github.com/stretchr/testify/assert"
)

func Test_staleListMsg(t *testing.T) {
	chatSession := model.CatalogSession{LastMsgID: 42}

	// the live catalog message may act on the session
	assert.False(t, staleListMsg(chatSession, 42))

	// a superseded list message (paging, sorting, delete buttons alike)
	// must be refused instead of acting on newer state
	assert.True(t, staleListMsg(chatSession, 41))

	// a chat with no list message yet accepts nothing
	assert.True(t, staleListMsg(model.CatalogSession{}, 42))
}
