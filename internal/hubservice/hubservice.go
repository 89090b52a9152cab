// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/urbansense/wastehub/internal/ai"
	"github.com/urbansense/wastehub/internal/cache"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/errors"
	"github.com/urbansense/wastehub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// HubService contains all repositories and service-wide dependencies.
// Every handle is constructed once at process start and injected here;
// there is no module-level client state.
type HubService struct {
	Readings repository.ReadingRepository
	Tickets  repository.TicketRepository
	Images   repository.ImageRepository
	Model    ai.Invoker
	Cache    *cache.ResponseCache
	Devices  config.DevicesConfig
	ModelCfg config.ModelConfig

	events *nuts.EventEmitter
}

// New creates a new HubService instance
func New(
	readings repository.ReadingRepository,
	tickets repository.TicketRepository,
	images repository.ImageRepository,
	model ai.Invoker,
	responseCache *cache.ResponseCache,
	devices config.DevicesConfig,
	modelCfg config.ModelConfig,
) *HubService {
	return &HubService{
		Readings: readings,
		Tickets:  tickets,
		Images:   images,
		Model:    model,
		Cache:    responseCache,
		Devices:  devices,
		ModelCfg: modelCfg,
		events:   nuts.NewEventEmitter(),
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Readings == nil {
		return ErrMissingDependency("readings")
	}
	if s.Tickets == nil {
		return ErrMissingDependency("tickets")
	}
	if s.Images == nil {
		return ErrMissingDependency("images")
	}
	if s.Model == nil {
		return ErrMissingDependency("model")
	}
	return nil
}

// OnTicketEvent registers a callback for ticket lifecycle events
// ("ticket.created", "ticket.image_attached").
func (s *HubService) OnTicketEvent(event string, handler func(id string)) {
	s.events.On(event, "ticket_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
