package handler

import (
	"context"
	"net/http"

	"bookingwizard/internal/wizard/core"
	"bookingwizard/internal/wizard/service"
	httputil "bookingwizard/pkg/http"
	"bookingwizard/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type selectCategoryRequest struct {
	Category string `json:"category"`
}

type setFieldsRequest struct {
	Fields map[string]any `json:"fields"`
}

type toggleRequest struct {
	Field    string `json:"field"`
	Choice   string `json:"choice"`
	Selected bool   `json:"selected"`
}

type WizardHandler struct {
	service service.WizardService
	log     *logger.Logger
}

func NewWizardHandler(service service.WizardService, log *logger.Logger) *WizardHandler {
	return &WizardHandler{
		service: service,
		log:     log,
	}
}

func (h *WizardHandler) Open(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	snap, err := h.service.Open(r.Context())
	if err != nil {
		h.writeError(w, "Open", err, nil)
		return
	}

	if err := httputil.WriteCreated(w, snap); err != nil {
		h.log.Error("failed to write created response", "handler", "Open", "operation", "WriteCreated", "error", err)
	}
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, err := h.service.Get(r.Context(), ps.ByName("id"))
	h.respond(w, "Get", snap, err)
}

func (h *WizardHandler) SelectCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req selectCategoryRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "SelectCategory", err, nil)
		return
	}

	snap, err := h.service.SelectCategory(r.Context(), ps.ByName("id"), req.Category)
	h.respond(w, "SelectCategory", snap, err)
}

func (h *WizardHandler) SetFields(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req setFieldsRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "SetFields", err, nil)
		return
	}

	snap, err := h.service.SetFields(r.Context(), ps.ByName("id"), req.Fields)
	h.respond(w, "SetFields", snap, err)
}

func (h *WizardHandler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req toggleRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "Toggle", err, nil)
		return
	}

	snap, err := h.service.Toggle(r.Context(), ps.ByName("id"), req.Field, req.Choice, req.Selected)
	h.respond(w, "Toggle", snap, err)
}

func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.step(w, r, "Advance", ps.ByName("id"), h.service.Advance)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.step(w, r, "Back", ps.ByName("id"), h.service.Back)
}

func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.step(w, r, "Submit", ps.ByName("id"), h.service.Submit)
}

func (h *WizardHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err, nil)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *WizardHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeError(w, "Categories", err, nil)
		return
	}

	if err := httputil.WriteSuccess(w, list); err != nil {
		h.log.Error("failed to write success response", "handler", "Categories", "operation", "WriteSuccess", "error", err)
	}
}

func (h *WizardHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/wizards", h.Open)
	router.GET("/api/v1/wizards/:id", h.Get)
	router.DELETE("/api/v1/wizards/:id", h.Cancel)
	router.POST("/api/v1/wizards/:id/category", h.SelectCategory)
	router.PATCH("/api/v1/wizards/:id/fields", h.SetFields)
	router.POST("/api/v1/wizards/:id/toggle", h.Toggle)
	router.POST("/api/v1/wizards/:id/advance", h.Advance)
	router.POST("/api/v1/wizards/:id/back", h.Back)
	router.POST("/api/v1/wizards/:id/submit", h.Submit)
	router.GET("/api/v1/booking-categories", h.Categories)
}

func (h *WizardHandler) step(w http.ResponseWriter, r *http.Request, name, id string, op func(context.Context, string) (core.Snapshot, error)) {
	snap, err := op(r.Context(), id)
	h.respond(w, name, snap, err)
}

// respond writes the snapshot, or the error with the snapshot attached when
// the wizard exists so the client can render its field errors.
func (h *WizardHandler) respond(w http.ResponseWriter, name string, snap core.Snapshot, err error) {
	if err != nil {
		var data any
		if snap.ID != "" {
			data = snap
		}
		h.writeError(w, name, err, data)
		return
	}

	if err := httputil.WriteSuccess(w, snap); err != nil {
		h.log.Error("failed to write success response", "handler", name, "operation", "WriteSuccess", "error", err)
	}
}

func (h *WizardHandler) writeError(w http.ResponseWriter, name string, err error, data any) {
	if writeErr := httputil.WriteErrorWithData(w, err, data); writeErr != nil {
		h.log.Error("failed to write error response", "handler", name, "operation", "WriteError", "error", writeErr)
	}
}
