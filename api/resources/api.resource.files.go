// FilePath: api/resources/api.resource.files.go
package resources

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// FileHandlers serves stored ticket images
type FileHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Download a stored image
// @Tags files
// @Produce octet-stream
// @Param name path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} envelope
// @Router /files/{name} [get]
func (h *FileHandlers) GetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	requestID := nuts.NID("req", 12)

	reader, mimeType, err := h.hubservice.Images.Open(r.Context(), name)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("file not found", err).WithRequestID(requestID))
		return
	}
	defer reader.Close()

	if mimeType != "" {
		w.Header().Set("Content-Type", mimeType)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		nuts.L.Errorf("[FileHandler] Failed streaming %s: %v", name, err)
	}
}
