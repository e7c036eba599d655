package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordchart/builder"
	"github.com/jsphweid/chordchart/db"
	"github.com/jsphweid/chordchart/dedup"
	"github.com/jsphweid/chordchart/eventstream"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
	"github.com/jsphweid/chordchart/render"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// request bodies larger than this are rejected
const maxBodyBytes = 8 << 20

var serveRecords bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRecords, "records", false, "serve GET /records/{id} from DynamoDB")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves rendering over HTTP",
	Long:  `Serves POST /render/{format}, which builds and renders the event stream in the request body.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var client dynamodbiface.DynamoDBAPI
		if serveRecords {
			c, err := db.NewClient(cfg.DynamoEndpoint, cfg.DynamoRegion)
			if err != nil {
				return err
			}
			client = c
		}

		srv := &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           NewRouter(client, cfg.DynamoTable),
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(logging.GetLogger().Handler(), slog.LevelError),
		}
		logging.Info("listening", "addr", cfg.ServerAddr)
		return srv.ListenAndServe()
	},
}

// NewRouter wires the HTTP routes. Record lookup is only routed when client
// is non-nil.
func NewRouter(client dynamodbiface.DynamoDBAPI, table string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render/{format}", HandleRender).Methods(http.MethodPost)
	router.HandleFunc("/render", HandleRender).Methods(http.MethodPost)
	router.HandleFunc("/formats", handleFormats).Methods(http.MethodGet)
	if client != nil {
		router.HandleFunc("/records/{id}", recordHandler(client, table)).Methods(http.MethodGet)
	}

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// HandleRender builds the event stream in the body and renders it in the
// format named by the path, or by the body when the path has none.
func HandleRender(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var input model.RenderRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, "could not unmarshal request body: "+err.Error())
		return
	}

	name := mux.Vars(r)["format"]
	if name == "" {
		name = input.Format
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	events, err := eventstream.ParseString("request", input.Events)
	if err != nil {
		var perr *eventstream.ParseError
		if errors.As(err, &perr) {
			writeError(w, http.StatusUnprocessableEntity, perr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc := builder.Build(events)
	dedup.NormalizeAll(doc)
	dedup.MergeDuplicates(doc)

	var out bytes.Buffer
	if err := render.Render(&out, format, doc, doc.Songs, renderOptions()); err != nil {
		logging.Error("render failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	writeJSON(w, http.StatusOK, model.RenderResponse{
		Format: string(format),
		Songs:  len(doc.Songs),
		Output: out.String(),
	})
}

func handleFormats(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(render.Formats)+1)
	for _, f := range append(render.Formats, render.FormatTable) {
		names = append(names, string(f))
	}
	writeJSON(w, http.StatusOK, names)
}

func recordHandler(client dynamodbiface.DynamoDBAPI, table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		records, err := db.GetRecords(r.Context(), client, table, []string{id})
		if err != nil {
			logging.Error("record lookup failed", "id", id, "error", err)
			writeError(w, http.StatusBadGateway, "record lookup failed")
			return
		}
		rec, ok := records[id]
		if !ok {
			writeError(w, http.StatusNotFound, "no record "+id)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("could not write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
