package vocabulary

import (
	"encoding/json"
	"net/http"

	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

type ListResponse struct {
	Movements []Entry `json:"movements"`
	Total     int     `json:"total"`
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.vocabulary.list")
	defer span.End()

	entries := handler.catalog.Entries()
	listRespJson, err := json.Marshal(ListResponse{
		Movements: entries,
		Total:     len(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal vocabulary listing: %s", err)
		http.Error(w, "failed to marshal vocabulary listing", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}
