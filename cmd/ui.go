package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skriva/doclabel/internal/config"
	"github.com/skriva/doclabel/internal/session"
	"github.com/skriva/doclabel/pkg/fields"
	"github.com/skriva/doclabel/pkg/label"
)

var (
	uiPort string
	uiHost string
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the labeling web interface",
	Long:  "Start a web server for uploading documents, reviewing suggested values and saving label artifacts",
	RunE:  runUI,
}

func init() {
	RootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiPort, "port", "8888", "Port to run the web server on")
	uiCmd.Flags().StringVar(&uiHost, "host", "localhost", "Host to bind the web server to")
}

// uiServer carries the state shared by all handlers.
type uiServer struct {
	cfg      *config.Config
	sessions *session.Store
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	srv := &uiServer{
		cfg:      cfg,
		sessions: session.NewStore(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", srv.handleSessions)
	mux.HandleFunc("/api/sessions/", srv.handleSessionDetail)

	addr := fmt.Sprintf("%s:%s", uiHost, uiPort)
	slog.Info("Starting labeling daemon", "host", uiHost, "port", uiPort)
	slog.Info("Labeling interface available", "url", fmt.Sprintf("http://%s", addr))

	return http.ListenAndServe(addr, mux)
}

// sessionSummary is the JSON shape for session listings.
type sessionSummary struct {
	ID           string `json:"id"`
	DocumentName string `json:"document_name"`
	CreatedAt    string `json:"created_at"`
}

func summarize(s *session.Session) sessionSummary {
	return sessionSummary{
		ID:           s.ID,
		DocumentName: s.DocumentName,
		CreatedAt:    s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (srv *uiServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		list := make([]sessionSummary, 0)
		for _, s := range srv.sessions.List() {
			list = append(list, summarize(s))
		}
		json.NewEncoder(w).Encode(list)
	case "POST":
		srv.handleUpload(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleUpload starts a new session: the uploaded document is analyzed
// immediately and any existing label file prefills the values.
func (srv *uiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	defs, err := fields.Load(srv.cfg.FieldsFile)
	if err != nil {
		respondWithError(w, "Failed to load fields: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if defs.Len() == 0 {
		respondWithError(w, "No fields configured", http.StatusConflict)
		return
	}

	engine, err := selectEngine(srv.cfg)
	if err != nil {
		respondWithError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sess := session.New(header.Filename, engine, defs, srv.cfg.LayoutModel, srv.cfg.DocumentModel)
	if err := sess.Analyze(r.Context(), document); err != nil {
		respondWithError(w, "Analysis failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	sess.Prefill(srv.cfg.OutputDir)
	srv.sessions.Put(sess)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"session_id": sess.ID,
		"document":   sess.DocumentName,
	})
}

// fieldState is the per-field JSON shape: definition, suggestion, current value.
type fieldState struct {
	Key        string            `json:"key"`
	Type       string            `json:"type"`
	Value      string            `json:"value,omitempty"`
	Suggestion *label.Suggestion `json:"suggestion,omitempty"`
}

func (srv *uiServer) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")

	sess, ok := srv.sessions.Get(sessionID)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case action == "" && r.Method == "GET":
		srv.writeSessionState(w, sess)
	case action == "values" && r.Method == "PUT":
		srv.handleValues(w, r, sess)
	case action == "save" && r.Method == "POST":
		srv.handleSave(w, sess)
	case action == "" && r.Method == "DELETE":
		srv.sessions.Remove(sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (srv *uiServer) writeSessionState(w http.ResponseWriter, sess *session.Session) {
	values := sess.Values()
	states := make([]fieldState, 0, sess.Fields().Len())
	for _, def := range sess.Fields().List() {
		state := fieldState{
			Key:   def.Key,
			Type:  def.Type,
			Value: values[def.Key],
		}
		if suggestion, ok := sess.Suggest(def.Key); ok {
			state.Suggestion = &suggestion
		}
		states = append(states, state)
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"session": summarize(sess),
		"fields":  states,
	})
}

// handleValues replaces the confirmed values with the submitted map.
func (srv *uiServer) handleValues(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	for key, text := range values {
		def, ok := sess.Fields().Get(key)
		if !ok {
			respondWithError(w, fmt.Sprintf("unknown field %q", key), http.StatusBadRequest)
			return
		}
		// Store under the definition's key so the saved labels pick the
		// value up regardless of the casing the client submitted.
		sess.SetValue(def.Key, text)
	}
	srv.writeSessionState(w, sess)
}

func (srv *uiServer) handleSave(w http.ResponseWriter, sess *session.Session) {
	warnings, err := sess.Save(srv.cfg.OutputDir)
	if err != nil {
		respondWithError(w, "Save failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"saved":    true,
		"warnings": warnings,
		"labels":   label.DocumentFileName(sess.DocumentName),
		"ocr":      label.OCRFileName(sess.DocumentName),
	})
}

func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
