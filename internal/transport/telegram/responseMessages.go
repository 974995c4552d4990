package telegram

const (
	internalErrMsg   string = "something went wrong..."
	requestTooOld    string = "this message is out of date, send /start for a fresh catalog"
	bookNotFound     string = "that book no longer exists, refreshing the catalog"
	noChangesToSave  string = "nothing changed, there is nothing to save"
	chooseFieldFirst string = "pick a field on the card first"
	noOpenFormMsg    string = "there is no open form, use the add or edit buttons"
	sendPhotoForm    string = "open the form and pick the image field before sending a photo"
	languageSaved    string = "recommendation language saved"
	pageSizeSaved    string = "page size saved, it applies from the next page draw"
	invalidPageSize  string = "send the new size with the command, like /pagesize 10 (1 to 20)"
	invalidLanguage  string = "that does not look like a language code, try something like en or vi"
	bookSaved        string = "book saved"
	bookDeleted      string = "book deleted"
)
