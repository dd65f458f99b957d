package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"insurecast/quote"
)

// looseString 接受 JSON 字符串、数字或布尔值
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	*s = looseString(data)
	return nil
}

// QuoteRequest 报价请求
type QuoteRequest struct {
	Age      looseString `json:"age"`
	Gender   looseString `json:"gender"`
	Height   looseString `json:"height"`
	Weight   looseString `json:"weight"`
	Children looseString `json:"children"`
	Smoker   looseString `json:"smoker"`
	Region   looseString `json:"region"`
}

func (q QuoteRequest) Form() quote.Form {
	return quote.Form{
		Age:      string(q.Age),
		Gender:   string(q.Gender),
		Height:   string(q.Height),
		Weight:   string(q.Weight),
		Children: string(q.Children),
		Smoker:   string(q.Smoker),
		Region:   string(q.Region),
	}
}

func (h *Handlers) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := h.quoter.Quote(r.Context(), req.Form())
	status := http.StatusOK
	switch {
	case errors.Is(result.Err, quote.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case result.Err != nil:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, result)
}
