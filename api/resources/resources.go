// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/urbansense/wastehub/internal/auth"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// queryDecoder decodes GET query parameters into typed structs.
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Resources holds all HTTP resource handlers
type Resources struct {
	Sensors *SensorHandlers
	Tickets *TicketHandlers
	AI      *AIHandlers
	Auth    *AuthHandlers
	Voice   *VoiceHandlers
	Files   *FileHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, authSvc *auth.Service) *Resources {
	return &Resources{
		Sensors: &SensorHandlers{hubservice: svc},
		Tickets: &TicketHandlers{hubservice: svc},
		AI:      &AIHandlers{hubservice: svc},
		Auth:    &AuthHandlers{auth: authSvc},
		Voice:   &VoiceHandlers{hubservice: svc},
		Files:   &FileHandlers{hubservice: svc},
	}
}

// envelope is the uniform response body: {success, data|error}.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respondWithData(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: payload})
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: err.Message})
	nuts.L.Errorf("[API] %s", err.Error())
}

// asAPIError maps any service error onto the API taxonomy. Errors without a
// classification are treated as upstream failures: a 500 carrying the raw
// message.
func asAPIError(err error) *errors.APIError {
	if apiErr, ok := err.(*errors.APIError); ok {
		return apiErr
	}
	return errors.NewUpstreamError(err.Error(), err)
}
