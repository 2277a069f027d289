package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/obelisk-mc/obelisk/internal/server/player"
)

// PlayerLister is the read side of the player registry.
type PlayerLister interface {
	ForEach(fn func(*player.Player))
	GetByName(name string) *player.Player
}

// PlayerInfo is the admin view of an online player.
type PlayerInfo struct {
	Name     string  `json:"name"`
	UUID     string  `json:"uuid"`
	EntityID int32   `json:"entity_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

func playerInfo(p *player.Player) PlayerInfo {
	pos := p.GetPosition()
	return PlayerInfo{
		Name:     p.Username,
		UUID:     p.UUID.String(),
		EntityID: p.EntityID,
		X:        pos.X,
		Y:        pos.Y,
		Z:        pos.Z,
	}
}

// NewRouter returns the admin HTTP handler: /metrics, /healthz, /players and
// /players/{name}.
func NewRouter(m *Metrics, players PlayerLister) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/players", func(w http.ResponseWriter, _ *http.Request) {
		list := []PlayerInfo{}
		players.ForEach(func(p *player.Player) {
			list = append(list, playerInfo(p))
		})
		writeJSON(w, http.StatusOK, list)
	})
	r.Get("/players/{name}", func(w http.ResponseWriter, req *http.Request) {
		p := players.GetByName(chi.URLParam(req, "name"))
		if p == nil {
			http.Error(w, "player not online", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, playerInfo(p))
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
