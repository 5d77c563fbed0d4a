package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookkeeping-backend/internal/services/ledger"
)

// TransactionHandler serves one surface (omzet or pengeluaran) over the
// shared transaction collection. Both surfaces have identical routes; they
// differ only in the allowed transaction types and visibility subset,
// which live on the ledger.Surface.
type TransactionHandler struct {
	svc     *ledger.Service
	surface ledger.Surface
}

func NewTransactionHandler(svc *ledger.Service, surface ledger.Surface) *TransactionHandler {
	return &TransactionHandler{svc: svc, surface: surface}
}

func (h *TransactionHandler) List(c *gin.Context) {
	views, err := h.svc.List(h.surface, ledger.ListFilter{
		Search:    c.Query("search"),
		Type:      c.Query("transaction_type"),
		AccountID: c.Query("account_id"),
		BranchID:  c.Query("branch_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, views, len(views), fmt.Sprintf("Successfully retrieved %s data.", h.surface.Label))
}

func (h *TransactionHandler) Get(c *gin.Context) {
	view, err := h.svc.Get(h.surface, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, view, fmt.Sprintf("Successfully retrieved %s data.", h.surface.Label))
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var in ledger.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	view, err := h.svc.Create(h.surface, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, view,
		fmt.Sprintf("%s %s successfully created.", h.surface.Label, view.TransactionID))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var in ledger.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	id := c.Param("id")
	view, err := h.svc.Update(h.surface, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, view, fmt.Sprintf("%s %s successfully updated.", h.surface.Label, id))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Deactivate(h.surface, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, fmt.Sprintf("%s %s successfully deactivated.", h.surface.Label, id))
}

func (h *TransactionHandler) AddFiles(c *gin.Context) {
	var req struct {
		Files []ledger.FileInput `json:"files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, "Invalid JSON payload", "")
		return
	}
	id := c.Param("id")
	view, err := h.svc.AddFiles(h.surface, id, req.Files)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"transaction_id": id,
		"files":          view.Files,
	}, fmt.Sprintf("Files added successfully to %s", strings.ToLower(h.surface.Label)))
}

func (h *TransactionHandler) RemoveFile(c *gin.Context) {
	if err := h.svc.RemoveFile(h.surface, c.Param("id"), c.Param("file_id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK,
		fmt.Sprintf("File removed successfully from %s", strings.ToLower(h.surface.Label)))
}
