package main

import (
	_ "embed"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

//go:embed index.html
var indexHTML []byte

func main() {
	addr := flag.String("addr", "", "listen address (overrides config)")
	configPath := flag.String("config", "", "config file path")
	importPath := flag.String("import", "", "export file to load on startup")
	flag.Parse()

	// Optional .env; environment overlays the YAML config, flags win.
	_ = godotenv.Load()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	if *addr != "" {
		cfg.Listen = *addr
	}

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
		}
	}

	store, err := OpenStore(loc)
	if err != nil {
		log.Fatalf("failed to open event store: %v", err)
	}
	defer store.Close()

	server := &Server{
		session:        NewSession(loc),
		store:          store,
		maxImportBytes: cfg.MaxImportBytes,
	}

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			log.Fatalf("failed to read %s: %v", *importPath, err)
		}
		if err := server.session.Load(data); err != nil {
			log.Fatalf("failed to import %s: %v", *importPath, err)
		}
		if err := store.ReplaceEvents(server.session.DocumentID, server.session.Events); err != nil {
			log.Fatalf("failed to index %s: %v", *importPath, err)
		}
		log.Printf("imported %s: format=%s events=%d days=%d",
			*importPath, server.session.Format, len(server.session.Events), server.session.Index.Len())
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})

	http.HandleFunc("/api/import", server.handleImport)
	http.HandleFunc("/api/timeline", server.handleTimeline)
	http.HandleFunc("/api/day", server.handleDay)
	http.HandleFunc("/api/day.ics", server.handleDayICS)
	http.HandleFunc("/api/nav", server.handleNav)

	log.Printf("starting server on %s", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
