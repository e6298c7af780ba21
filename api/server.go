package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"goledger/node"
)

// Server exposes the node's operations over HTTP.
type Server struct {
	node *node.Node
	port string
}

// NewServer creates an HTTP server wrapping the given node.
func NewServer(n *node.Node, port string) *Server {
	return &Server{
		node: n,
		port: port,
	}
}

// Router builds the route table. Split out from Start so tests can
// mount it on an httptest server.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	m := s.node.Metrics()

	r.Handle("/transactions/new", m.WrapHandler("/transactions/new", http.HandlerFunc(s.handleNewTransaction))).Methods(http.MethodPost)
	r.Handle("/mine", m.WrapHandler("/mine", http.HandlerFunc(s.handleMine))).Methods(http.MethodGet)
	r.Handle("/chain", m.WrapHandler("/chain", http.HandlerFunc(s.handleChain))).Methods(http.MethodGet)
	r.Handle("/nodes/register", m.WrapHandler("/nodes/register", http.HandlerFunc(s.handleRegisterPeer))).Methods(http.MethodPost)
	r.Handle("/nodes/resolve", m.WrapHandler("/nodes/resolve", http.HandlerFunc(s.handleResolve))).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return handlers.LoggingHandler(os.Stdout, r)
}

// Start begins serving HTTP requests (blocks forever).
func (s *Server) Start() error {
	log.Printf("%s\tHTTP API listening on port %s", s.node.ID, s.port)
	return http.ListenAndServe(":"+s.port, s.Router())
}
