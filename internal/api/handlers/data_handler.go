package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesdash/internal/service"
)

type DataHandler struct {
	loader *service.Loader
	store  *service.DataStore
}

func NewDataHandler(loader *service.Loader, store *service.DataStore) *DataHandler {
	return &DataHandler{loader: loader, store: store}
}

func (h *DataHandler) Reload(c *gin.Context) {
	snap, err := h.loader.Reload(c.Request.Context())
	if err != nil {
		errorResponse(c, "failed to reload data", err)
		return
	}

	c.JSON(http.StatusOK, snap.Info())
}

func (h *DataHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current().Info())
}
