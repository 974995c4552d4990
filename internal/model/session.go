package model

type Action int

const (
	DefaultAction Action = iota
	ExpectingFormField
	ExpectingLanguage
)

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

type FormField string

const (
	FieldTitle         FormField = "title"
	FieldAuthors       FormField = "authors"
	FieldPublishedDate FormField = "publishedDate"
	FieldImage         FormField = "image"
	FieldDescription   FormField = "description"
)

// CatalogSession is the authoritative list state of one chat. Books
// holds the full record set in last-fetched order and is refreshed
// wholesale after every successful mutation.
type CatalogSession struct {
	Books         []Book
	CurrentPage   int
	SortDirection SortDirection
	SearchTerm    string
	LastMsgID     int
	Action        Action
	Form          *FormSession
}

// FormSession exists only while the add/edit form is open and is
// dropped on save, cancel or dismiss.
type FormSession struct {
	Mode      FormMode
	BookID    string
	Draft     BookDraft
	Original  string // fingerprint taken when the form opened (edit mode)
	Expecting FormField
	FormMsgID int
	// Recommendations are the candidates of the latest title lookup,
	// indexed by the pick callbacks.
	Recommendations []RecommendedBook
}

func (f *FormSession) Dirty() bool {
	if f == nil || f.Mode != FormModeEdit {
		return false
	}
	return f.Draft.Fingerprint() != f.Original
}
