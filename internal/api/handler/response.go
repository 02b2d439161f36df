package handler

// envelope is the JSON shape of every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(data any) envelope { return envelope{Success: true, Data: data} }

// Fail builds the error envelope. It is shared with the HTTP error handler.
func Fail(msg string) envelope { return envelope{Success: false, Error: msg} }
