package http

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"insurecast/ml"
	"insurecast/quote"
)

//go:embed web
var webFS embed.FS

// ModelSource 提供当前模型快照
type ModelSource interface {
	Current() (*ml.Loaded, error)
}

// Handlers 处理器依赖
type Handlers struct {
	quoter     *quote.Quoter
	models     ModelSource
	heightUnit quote.HeightUnit
	logger     *zap.Logger
	page       *template.Template
	upgrader   websocket.Upgrader
}

func NewHandlers(quoter *quote.Quoter, models ModelSource, heightUnit quote.HeightUnit, logger *zap.Logger) (*Handlers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	page, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, err
	}
	return &Handlers{
		quoter:     quoter,
		models:     models,
		heightUnit: heightUnit,
		logger:     logger,
		page:       page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

func RegisterHandlers(mux *http.ServeMux, h *Handlers) {
	static, _ := fs.Sub(webFS, "web/static")

	mux.HandleFunc("GET /{$}", h.handleForm)
	mux.HandleFunc("POST /{$}", h.handleSubmit)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/model", h.handleModel)
	mux.HandleFunc("POST /api/quote", h.handleQuote)
	mux.HandleFunc("GET /ws/validate", h.handleLiveValidate)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type modelInfo struct {
	Type     string    `json:"type"`
	Path     string    `json:"path"`
	Features []string  `json:"features"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (h *Handlers) handleModel(w http.ResponseWriter, r *http.Request) {
	loaded, err := h.models.Current()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, modelInfo{
		Type:     loaded.Type,
		Path:     loaded.Path,
		Features: loaded.Model.Features(),
		LoadedAt: loaded.LoadedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
