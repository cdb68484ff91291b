package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hopon-app/hopon/services"
	"github.com/hopon-app/hopon/views"
)

// PageHandler отдаёт HTML-экраны. Экраны строятся только из каталога и URL.
type PageHandler struct {
	sportService services.SportService
	renderer     *views.Renderer
}

func NewPageHandler(ss services.SportService, renderer *views.Renderer) *PageHandler {
	return &PageHandler{
		sportService: ss,
		renderer:     renderer,
	}
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		h.renderFailure(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageHome, views.HomeData(sports))
}

func (h *PageHandler) SportActions(w http.ResponseWriter, r *http.Request) {
	sportID := getPathParam(r, "sportId")
	title := h.sportService.ActionsTitle(sportID)
	h.render(w, r, http.StatusOK, views.PageActions, views.ActionsData(title, sportID))
}

// Join и Create не проверяют sportId: показывается любое значение из URL.
func (h *PageHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageJoin, views.JoinData(getPathParam(r, "sportId")))
}

func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageCreate, views.CreateData(getPathParam(r, "sportId")))
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, views.PageNotFound, views.Data{})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page views.Page, data views.Data) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.renderFailure(w, r, err)
	}
}

func (h *PageHandler) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("failed to render page",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
