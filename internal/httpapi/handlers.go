package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/roach88/tablestate/internal/session"
	"github.com/roach88/tablestate/internal/table"
)

// opResponse answers every mutation. Event holds a *table.ChangeEvent or
// a *table.SelectionEvent, or nil.
type opResponse struct {
	Event    any            `json:"event"`
	Snapshot table.Snapshot `json:"snapshot"`
}

type sortRequest struct {
	Column string `json:"column"`
}

type filterRequest struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

type pageRequest struct {
	Current  int `json:"current"`
	PageSize int `json:"page_size,omitempty"`
}

type selectRequest struct {
	Index   int  `json:"index"`
	Checked bool `json:"checked"`
	Shift   bool `json:"shift,omitempty"`
}

type bulkRequest struct {
	Op table.BulkOp `json:"op"`
}

type customRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sess.Snapshot(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpSort, Column: req.Column})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpFilter, Column: req.Column, Values: req.Values})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpPage, Current: req.Current, PageSize: req.PageSize})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpSelect, Index: req.Index, Checked: req.Checked, Shift: req.Shift})
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpSelectBulk, Bulk: req.Op})
}

func (s *Server) handleCustom(w http.ResponseWriter, r *http.Request) {
	var req customRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.exec(w, r, session.Command{Op: session.OpSelectCustom, Key: req.Key})
}

// exec runs cmd through the session and answers with its event and the
// snapshot taken right after it.
func (s *Server) exec(w http.ResponseWriter, r *http.Request, cmd session.Command) {
	ev, snap, err := s.sess.Exec(r.Context(), cmd)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opResponse{Event: ev, Snapshot: snap})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.badRequest(w, r, "invalid request body: "+err.Error())
		return false
	}
	return true
}
