package telebotConverter

import (
	"fmt"
	"strconv"
	"strings"

	"book_catalog_tgbot/internal/catalog"
	"book_catalog_tgbot/internal/model"
	"book_catalog_tgbot/internal/model/tg/tgCallback"

	tele "gopkg.in/telebot.v4"
)

var fieldLabels = map[model.FormField]string{
	model.FieldTitle:         "Title",
	model.FieldAuthors:       "Authors",
	model.FieldPublishedDate: "Published date",
	model.FieldImage:         "Image",
	model.FieldDescription:   "Description",
}

// CatalogPage renders one page of the catalog with per-item actions, the
// sort row and, when the result set spans several pages, pagination.
func CatalogPage(page catalog.RenderModel) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}

	if page.Empty {
		text = "No books found"
		if page.SearchTerm != "" {
			text = fmt.Sprintf("No books found for: %s", page.SearchTerm)
		}
		addBtn := markup.Data("add a book", tgCallback.OpenCreateForm)
		markup.Inline(markup.Row(addBtn))
		return text, markup
	}

	sb := strings.Builder{}
	if page.SearchTerm != "" {
		sb.WriteString(fmt.Sprintf("Search results: %s\n\n", page.SearchTerm))
	}

	menuRows := make([]tele.Row, 0)

	for i, book := range page.Items {
		sb.WriteString(fmt.Sprintf("%d) %s\n%s, %s\n\n", i+1, book.Title, strings.Join(book.Authors, ", "), book.PublishedDate))

		editBtn := markup.Data(fmt.Sprintf("edit %d", i+1), tgCallback.OpenEditForm+book.ID)
		deleteBtn := markup.Data(fmt.Sprintf("delete %d", i+1), tgCallback.DeleteBook+book.ID)
		menuRows = append(menuRows, markup.Row(editBtn, deleteBtn))
	}

	menuRows = append(menuRows, sortRow(markup, page.Sort))

	if page.Paginated {
		menuRows = append(menuRows, paginationRow(markup, page.Page, page.PageCount))
	}

	addBtn := markup.Data("add a book", tgCallback.OpenCreateForm)
	menuRows = append(menuRows, markup.Row(addBtn))

	markup.Inline(menuRows...)

	return sb.String(), markup
}

// sortRow marks the active direction so tapping it again reads as "turn
// this off".
func sortRow(markup *tele.ReplyMarkup, active model.SortDirection) tele.Row {
	ascLabel := "title A-Z"
	descLabel := "title Z-A"
	switch active {
	case model.SortAsc:
		ascLabel = "✓ " + ascLabel
	case model.SortDesc:
		descLabel = "✓ " + descLabel
	}

	return markup.Row(
		markup.Data(ascLabel, tgCallback.SortAsc),
		markup.Data(descLabel, tgCallback.SortDesc),
	)
}

func paginationRow(markup *tele.ReplyMarkup, page, pageCount int) tele.Row {
	btns := make([]tele.Btn, 0, 3)
	if page > 1 {
		btns = append(btns, markup.Data("prev", tgCallback.ToPage+strconv.Itoa(page-1)))
	}
	btns = append(btns, markup.Data(fmt.Sprintf("%d / %d", page, pageCount), tgCallback.PageNumber))
	if page < pageCount {
		btns = append(btns, markup.Data("next", tgCallback.ToPage+strconv.Itoa(page+1)))
	}
	return markup.Row(btns...)
}

// FormCard renders the open add/edit form: current draft values, one
// button per field, title suggestions when present, and the save row.
// In edit mode the save button appears only once the draft differs from
// the opened record.
func FormCard(form *model.FormSession) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	sb := strings.Builder{}

	if form.Mode == model.FormModeCreate {
		sb.WriteString("New book\n\n")
	} else {
		sb.WriteString("Edit book\n\n")
	}

	sb.WriteString(fmt.Sprintf("Title: %s\n", orDash(form.Draft.Title)))
	sb.WriteString(fmt.Sprintf("Authors: %s\n", orDash(strings.Join(form.Draft.Authors, ", "))))
	sb.WriteString(fmt.Sprintf("Published date: %s\n", orDash(form.Draft.PublishedDate)))
	sb.WriteString(fmt.Sprintf("Image: %s\n", orDash(form.Draft.ImageUrl)))
	sb.WriteString(fmt.Sprintf("Description: %s\n", orDash(form.Draft.Description)))

	if form.Expecting != "" {
		sb.WriteString(fmt.Sprintf("\nEnter a value for: %s", fieldLabels[form.Expecting]))
		if form.Expecting == model.FieldImage {
			sb.WriteString("\nsend a photo or a URL")
		}
	}

	menuRows := make([]tele.Row, 0)
	menuRows = append(menuRows,
		markup.Row(
			markup.Data("title", tgCallback.EditField+string(model.FieldTitle)),
			markup.Data("authors", tgCallback.EditField+string(model.FieldAuthors)),
		),
		markup.Row(
			markup.Data("date", tgCallback.EditField+string(model.FieldPublishedDate)),
			markup.Data("image", tgCallback.EditField+string(model.FieldImage)),
			markup.Data("description", tgCallback.EditField+string(model.FieldDescription)),
		),
	)

	for i, rec := range form.Recommendations {
		if i%2 == 0 {
			menuRows = append(menuRows, make(tele.Row, 0, 2))
		}
		btn := markup.Data("💡 "+rec.Title, tgCallback.PickRecommend+strconv.Itoa(i))
		menuRows[len(menuRows)-1] = append(menuRows[len(menuRows)-1], btn)
	}

	saveRow := make([]tele.Btn, 0, 2)
	if form.Mode == model.FormModeCreate || form.Dirty() {
		saveRow = append(saveRow, markup.Data("save", tgCallback.SaveForm))
	}
	saveRow = append(saveRow, markup.Data("cancel", tgCallback.CancelForm))
	menuRows = append(menuRows, markup.Row(saveRow...))

	markup.Inline(menuRows...)

	return sb.String(), markup
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// ConfirmDeleteDialog asks before a delete goes through; nothing is
// removed until the confirm button is pressed.
func ConfirmDeleteDialog(book model.Book) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	text = fmt.Sprintf("Delete \"%s\"?", book.Title)

	confirmBtn := markup.Data("delete", tgCallback.ConfirmDelete+book.ID)
	cancelBtn := markup.Data("keep it", tgCallback.CancelDelete)

	markup.Inline(markup.Row(confirmBtn, cancelBtn))

	return text, markup
}

// ValidationSummary folds per-field messages into one toast, in the
// order the fields appear on the card.
func ValidationSummary(fields map[model.FormField]string) string {
	msgs := make([]string, 0, len(fields))
	for _, field := range []model.FormField{
		model.FieldTitle,
		model.FieldAuthors,
		model.FieldPublishedDate,
		model.FieldImage,
		model.FieldDescription,
	} {
		if msg, ok := fields[field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "\n")
}

func LanguageMenu(current string) (text string) {
	return fmt.Sprintf("Recommendation language is %s.\nSend a language code (en, vi, fr ...) to change it.", current)
}
