package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/matt-g-everett/animtx/stream"
	"github.com/matt-g-everett/animtx/view"
)

// Api serves the model being played over HTTP.
type Api struct {
	controller *stream.Controller
	mux        *http.ServeMux
}

// NewApi creates an instance of an Api.
func NewApi(controller *stream.Controller) *Api {
	a := new(Api)
	a.controller = controller
	a.mux = http.NewServeMux()
	a.mux.HandleFunc("/text", a.handleText)
	a.mux.HandleFunc("/svg", a.handleSVG)
	a.mux.HandleFunc("/frame", a.handleFrame)
	a.mux.HandleFunc("/status", a.handleStatus)
	return a
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *Api) render(w http.ResponseWriter, r *http.Request, f view.Format, contentType string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	out, err := a.controller.Render(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(out))
}

func (a *Api) handleText(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, view.TextFormat, "text/plain; charset=utf-8")
}

func (a *Api) handleSVG(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, view.SVGFormat, "image/svg+xml")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tick := a.controller.Status().Tick
	if s := r.URL.Query().Get("tick"); s != "" {
		t, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "tick must be an integer", http.StatusBadRequest)
			return
		}
		tick = t
	}

	f, err := a.controller.FrameAt(tick)
	if errors.Is(err, stream.ErrOutOfRange) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, f)
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.controller.Status())
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a)
}
