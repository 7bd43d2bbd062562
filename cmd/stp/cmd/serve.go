package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/metrics"
	"github.com/VukDukic/Simple-Trigger-Pattern/pkg/platform"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dispatch engine over HTTP",
	Long: `Expose the trigger dispatch engine as an HTTP service: POST /operations
runs a logical operation and returns its report, /metrics serves Prometheus
metrics, /healthz reports liveness.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config or :8080)")
}

// operationRequest is the POST /operations payload. Either records or count
// must be set; count generates synthetic records server-side.
type operationRequest struct {
	Kind    string            `json:"kind"`
	Records []platform.Record `json:"records,omitempty"`
	Count   int               `json:"count,omitempty"`
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = viper.GetString("listen_addr")
	}

	logger := newLogger()
	exporter := metrics.NewExporter()
	dispatcher, err := platform.NewDispatcher(newAuditFactory(logger), platform.Config{
		SubBatchLimit: subBatchLimit(),
		Logger:        logger,
		Metrics:       exporter,
	})
	if err != nil {
		return err
	}

	serverLog := logger.WithComponent("server")

	router := mux.NewRouter()
	router.Handle("/metrics", exporter).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.HandleFunc("/operations", func(w http.ResponseWriter, r *http.Request) {
		var req operationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		kind, err := platform.ParseOperationKind(req.Kind)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		records := req.Records
		if len(records) == 0 && req.Count > 0 {
			records = make([]platform.Record, req.Count)
			for i := range records {
				records[i] = platform.Record{ID: syntheticID(i)}
			}
		}

		report, err := dispatcher.Run(kind, records)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}).Methods("POST")

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT
	errChan := make(chan error, 1)
	go func() {
		serverLog.Info("Dispatch server listening", map[string]interface{}{"addr": addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		serverLog.Info("Shutting down", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func syntheticID(i int) string {
	return fmt.Sprintf("rec-%06d", i+1)
}
