package http

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"insurecast/quote"
)

type regionOption struct {
	Name    string
	Checked bool
}

// pageData 页面模板数据
type pageData struct {
	Form       quote.Form
	Female     bool
	Smoker     bool
	Regions    []regionOption
	HeightUnit string
	Result     *quote.Result
	Disclaimer string
}

func newPageData(form quote.Form, unit quote.HeightUnit, result *quote.Result) pageData {
	in := quote.Parse(form, unit)
	data := pageData{
		Form:       form,
		Female:     in.Gender == quote.Female,
		Smoker:     in.Smoker,
		HeightUnit: string(unit),
		Result:     result,
		Disclaimer: quote.DisclaimerText,
	}
	for _, region := range quote.Regions {
		data.Regions = append(data.Regions, regionOption{Name: region.String(), Checked: region == in.Region})
	}
	return data
}

func (h *Handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, newPageData(quote.Form{}, h.heightUnit, nil))
}

func (h *Handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form := quote.Form{
		Age:      r.PostForm.Get("age"),
		Gender:   r.PostForm.Get("gender"),
		Height:   r.PostForm.Get("height"),
		Weight:   r.PostForm.Get("weight"),
		Children: r.PostForm.Get("children"),
		Smoker:   r.PostForm.Get("smoker"),
		Region:   r.PostForm.Get("region"),
	}

	result := h.quoter.Quote(r.Context(), form)
	h.render(w, r, http.StatusOK, newPageData(form, h.heightUnit, &result))
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("render page", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
