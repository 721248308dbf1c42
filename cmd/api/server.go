package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
	"html/template"
	"net/http"
	"paypal-virtual-terminal/internal/charge"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Server struct {
	port        int
	environment string
	currency    string
	charges     *charge.Service
	nr          *newrelic.Application
	srv         *http.Server
}

// NewServer wires the HTTP front end. nr may be nil when monitoring is off.
func NewServer(port int, cfg *Config, charges *charge.Service, nr *newrelic.Application) *Server {
	return &Server{
		port:        port,
		environment: cfg.Environment,
		currency:    cfg.Currency,
		charges:     charges,
		nr:          nr,
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.index).Methods("GET")
	router.HandleFunc("/charge", s.charge).Methods("POST")
	router.HandleFunc("/validate-credentials", s.validateCredentials).Methods("POST")
	router.HandleFunc("/healthz", s.health).Methods("GET")

	return s.logRequests(s.instrument(router))
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	s.srv = &http.Server{
		Addr:    fmt.Sprintf("%v:%v", address, s.port),
		Handler: s.Handler(),
	}

	log.Printf("listening requests at %v:%v", address, s.port)

	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

type indexPage struct {
	Environment string
	Currency    string
	Currencies  []string
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Environment: s.environment,
		Currency:    s.currency,
		Currencies:  currencyOptions(s.currency),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		log.Errorf("rendering index page: %v", err)
	}
}

func (s *Server) charge(w http.ResponseWriter, r *http.Request) {
	var request ChargeRequest
	err := json.NewDecoder(r.Body).Decode(&request)

	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c, err := request.toCharge(s.currency)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := s.charges.Charge(r.Context(), c)
	if err != nil {
		var payErr *charge.PaymentError
		if errors.As(err, &payErr) {
			writeJSON(w, http.StatusOK, ErrorResponse{Error: charge.FailureMessage, Details: payErr.Details})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: charge.FailureMessage, Details: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(result); err != nil {
		log.Errorf("writing charge response: %v", err)
	}
}

func (s *Server) validateCredentials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.charges.ValidateCredentials(r.Context()))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Environment: s.environment})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func currencyOptions(def string) []string {
	options := []string{"USD", "EUR", "GBP"}
	for _, c := range options {
		if c == def {
			return options
		}
	}
	return append([]string{def}, options...)
}
