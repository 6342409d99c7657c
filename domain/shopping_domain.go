package domain

var (
	MessageSuccessSendShoppingList = "shopping list sent to your email"

	MessageFailedExportShoppingList = "failed to export shopping list"
	MessageFailedSendShoppingList   = "failed to send shopping list"

	ErrUnsupportedFormat = NewValidationError("format", "unsupported export format, use pdf or txt")
	ErrSendMailFailed    = &Error{Kind: ErrTransient, Message: "shopping list could not be sent, please retry"}
)

const (
	ShoppingListHeader = "Shopping list:"

	FormatPDF  = "pdf"
	FormatText = "txt"
)

type (
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int64  `json:"total_amount"`
	}

	// ShoppingListDocument is a rendered shopping list ready for download.
	ShoppingListDocument struct {
		FileName    string
		ContentType string
		Body        []byte
	}
)
