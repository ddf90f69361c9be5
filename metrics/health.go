package metrics

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
)

type healthResponse struct {
	Status         string `json:"status"`
	LastCycleEpoch int64  `json:"last_cycle_epoch"`
	BestRoute      string `json:"best_route,omitempty"`
}

// health remembers the last observed outcome for the /health endpoint.
type health struct {
	mu   sync.RWMutex
	resp healthResponse
}

func newHealth() *health {
	return &health{resp: healthResponse{Status: "starting"}}
}

func (h *health) observe(o planner.Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resp = healthResponse{Status: "ok", LastCycleEpoch: o.Now.Unix(), BestRoute: o.BestRoute()}
}

func (h *health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	resp := h.resp
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
