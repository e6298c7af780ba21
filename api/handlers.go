package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"goledger/blockchain"
	"goledger/consensus"
)

type transactionRequest struct {
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	Amount    *float64 `json:"amount"`
}

func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "invalid transaction: missing amount")
		return
	}

	index, err := s.node.SubmitTransaction(req.Sender, req.Recipient, *req.Amount)
	if err != nil {
		var vErr blockchain.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Transaction will be added to block %d", index),
	})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	block, err := s.node.Mine(r.Context())
	if err != nil {
		log.Printf("%s\tMining failed: %v", s.node.ID, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "New block forged",
		"index":         block.Index,
		"transactions":  block.Transactions,
		"proof":         block.Proof,
		"previous_hash": block.PreviousHash,
	})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	chain, length := s.node.Chain()

	writeJSON(w, http.StatusOK, consensus.ChainResponse{
		Chain:  chain,
		Length: length,
	})
}

type registerRequest struct {
	Address string `json:"address"`
}

func (s *Server) handleRegisterPeer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	address, err := s.node.RegisterPeer(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     fmt.Sprintf("Peer %s registered", address),
		"total_peers": len(s.node.Peers()),
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	replaced, chain := s.node.ResolveConsensus(r.Context())

	message := "Local chain retained"
	if replaced {
		message = "Local chain replaced"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  message,
		"replaced": replaced,
		"chain":    chain,
		"length":   len(chain),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"node_id": s.node.ID,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
