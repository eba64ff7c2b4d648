package commands

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// Dispatcher maps symbolic command names to handlers. The table is built
// once at startup; an unknown name routes to the listing fallback with an
// explanatory message instead of failing.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	fallback Handler
}

func NewDispatcher(fallback Handler) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		fallback: fallback,
	}
}

func (d *Dispatcher) Register(name string, handler Handler) {
	d.mu.Lock()
	d.handlers[name] = handler
	d.mu.Unlock()
}

// Resolve returns the handler for name, or (fallback, false) when the
// name is unknown.
func (d *Dispatcher) Resolve(name string) (Handler, bool) {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()
	if !ok {
		return d.fallback, false
	}
	return h, true
}

// Dispatch executes the named command. Unknown names run the fallback and
// attach a message so the listing view can explain what happened.
func (d *Dispatcher) Dispatch(c *gin.Context, name string) Result {
	h, known := d.Resolve(name)
	result := h.Execute(c)
	if !known {
		if result.Data == nil {
			result.Data = gin.H{}
		}
		result.Data["message"] = "unknown command: " + name
	}
	return result
}
