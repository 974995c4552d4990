package tgCallback

// Callback button data
const (
	SortAsc        string = "sort_asc"
	SortDesc       string = "sort_desc"
	OpenCreateForm string = "open_create_form"
	SaveForm       string = "save_form"
	CancelForm     string = "cancel_form"
	CancelDelete   string = "cancel_delete"
	PageNumber     string = "page_number"

	// prefixes
	ToPage        string = "to_page:"
	OpenEditForm  string = "open_edit_form:"
	EditField     string = "edit_field:"
	PickRecommend string = "pick_recommend:"
	DeleteBook    string = "delete_book:"
	ConfirmDelete string = "confirm_delete:"
)
