// Command oracle-watch watches a directory of plain-text Oracle card files
// and broadcasts re-parse results to connected WebSocket clients as they
// change, the live-reload demo surface.
//
// Each watched file holds one card: a name line followed by its Oracle
// text. On create or write, oracle-watch re-parses the file and pushes the
// result to every connected client; a parse that produces zero steps is
// reported as-is rather than treated as an error, since "recognize nothing"
// is a valid total outcome for unsupported phrasing.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/obslog"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/watchhub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	logLevel := os.Getenv("ORACLE_LOG_LEVEL")
	if err := obslog.Init(&logLevel); err != nil {
		panic(err)
	}
	defer obslog.Sync()
	logger := obslog.Get()

	dir := os.Getenv("ORACLE_WATCH_DIR")
	if dir == "" {
		dir = "."
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := watchhub.NewHub()
	go hub.Run(ctx)

	registry := newCardRegistry()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatal("failed to create file watcher", zap.Error(err))
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		logger.Fatal("failed to watch directory", zap.String("dir", dir), zap.Error(err))
	}

	seedExisting(dir, registry, hub, logger)
	go watchLoop(ctx, watcher, registry, hub, logger)

	r := mux.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		hub.Connect(ctx, uuid.NewString(), conn)
	})
	r.HandleFunc("/cards", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, registry.snapshot())
	}).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8091"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		logger.Info("oracle-watch starting", zap.String("port", port), zap.String("dir", dir))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("watch server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("oracle-watch shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}

// cardRegistry holds the most recent parse of every watched file, for the
// /cards listing endpoint.
type cardRegistry struct {
	mu    sync.RWMutex
	cards map[string]watchhub.CardUpdate
}

func newCardRegistry() *cardRegistry {
	return &cardRegistry{cards: make(map[string]watchhub.CardUpdate)}
}

func (r *cardRegistry) set(file string, update watchhub.CardUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[file] = update
}

func (r *cardRegistry) remove(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cards, file)
}

func (r *cardRegistry) snapshot() []watchhub.CardUpdate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]watchhub.CardUpdate, 0, len(r.cards))
	for _, u := range r.cards {
		out = append(out, u)
	}
	return out
}

func seedExisting(dir string, registry *cardRegistry, hub *watchhub.Hub, logger *zap.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("failed to list watch directory", zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !isCardFile(e.Name()) {
			continue
		}
		processFile(filepath.Join(dir, e.Name()), registry, hub, logger)
	}
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, registry *cardRegistry, hub *watchhub.Hub, logger *zap.Logger) {
	debounced := make(map[string]*time.Timer)
	var mu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isCardFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) {
				registry.remove(event.Name)
				hub.Broadcast <- watchhub.CardUpdate{Type: "removed", File: event.Name}
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			if t, exists := debounced[event.Name]; exists {
				t.Stop()
			}
			name := event.Name
			debounced[name] = time.AfterFunc(150*time.Millisecond, func() {
				processFile(name, registry, hub, logger)
				mu.Lock()
				delete(debounced, name)
				mu.Unlock()
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func isCardFile(name string) bool {
	return strings.HasSuffix(name, ".card")
}

// processFile reads one card file (name on the first line, Oracle text on
// the rest), parses it, and broadcasts the result.
func processFile(path string, registry *cardRegistry, hub *watchhub.Hub, logger *zap.Logger) {
	raw, err := os.ReadFile(path)
	if err != nil {
		update := watchhub.CardUpdate{Type: "error", File: path, Error: err.Error()}
		registry.set(path, update)
		hub.Broadcast <- update
		return
	}

	lines := strings.SplitN(string(raw), "\n", 2)
	cardName := strings.TrimSpace(lines[0])
	text := ""
	if len(lines) > 1 {
		text = lines[1]
	}

	ir := oracle.ParseOracleText(text, cardName)
	update := watchhub.CardUpdate{
		Type:     "parsed",
		File:     path,
		CardName: ir.CardName,
		Ir:       summarize(ir),
	}
	registry.set(path, update)
	hub.Broadcast <- update
	logger.Info("reparsed watched card", zap.String("file", path), zap.String("card", ir.CardName))
}

func summarize(ir oracle.Ir) *watchhub.ParsedSummary {
	out := &watchhub.ParsedSummary{Abilities: make([]watchhub.AbilitySummary, len(ir.Abilities))}
	for i, ab := range ir.Abilities {
		steps := make([]watchhub.StepSummary, len(ab.Steps))
		for j, s := range ab.Steps {
			steps[j] = watchhub.StepSummary{Kind: string(s.Kind()), Raw: s.RawClause()}
		}
		out.Abilities[i] = watchhub.AbilitySummary{Type: string(ab.Type), Steps: steps}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
