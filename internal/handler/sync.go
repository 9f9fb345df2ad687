package handler

import (
	"net/http"

	"vionup/internal/apierror"
	"vionup/internal/dto"
	"vionup/internal/worker"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct{ dispatcher *worker.Dispatcher }

func NewSyncHandler(dispatcher *worker.Dispatcher) *SyncHandler {
	return &SyncHandler{dispatcher: dispatcher}
}

// Trigger enqueues an external-source refresh for the group. The actual fetch
// and replace run in the worker pool; the response only acknowledges the job.
func (h *SyncHandler) Trigger(c *gin.Context) {
	var req dto.SyncRequest
	if !bindAndValidate(c, &req) {
		return
	}
	payload := worker.SyncPayload{GroupID: req.GroupID}
	if err := h.dispatcher.EnqueueSync(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao agendar sincronizacao"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
