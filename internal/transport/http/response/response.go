package response

// ErrorBody is the only error shape clients ever see; internal detail stays
// in the logs.
type ErrorBody struct {
	Error string `json:"error"`
}

func Err(msg string) ErrorBody { return ErrorBody{Error: msg} }

// Page is the common list envelope.
type Page struct {
	Items       any   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

func NewPage(items any, currentPage, totalPages int, totalItems int64) Page {
	return Page{Items: items, CurrentPage: currentPage, TotalPages: totalPages, TotalItems: totalItems}
}

// Message is for mutations whose only payload is an acknowledgement.
type Message struct {
	Message string `json:"message"`
}

func Msg(s string) Message { return Message{Message: s} }
