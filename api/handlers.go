package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/sessions"

	"github.com/stenstromen/bioportal/db"
	model "github.com/stenstromen/bioportal/model"
)

const (
	ownedKey = "tokens"
	// maxOwned bounds the cookie; the oldest ids are forgotten first.
	maxOwned = 32
)

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	page, err := indexPage()
	if err != nil {
		s.logger(r).Error("render index", slog.String("err", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) saveToken(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)

	var req struct {
		Token *string `json:"token"`
		Label *string `json:"label"`
	}
	if !decodeJSON(w, r, &req, "token required") {
		return
	}
	if req.Token == nil || *req.Token == "" {
		writeError(w, http.StatusBadRequest, "token required")
		return
	}
	label := model.DefaultLabel
	if req.Label != nil && strings.TrimSpace(*req.Label) != "" {
		label = *req.Label
	}

	sealed, err := s.sealer.Seal(*req.Token)
	if err != nil {
		log.Error("save-token seal failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	id, err := s.store.InsertToken(r.Context(), label, sealed)
	if err != nil {
		log.Error("save-token insert failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	session := s.session(r)
	ids := append(owned(session), id)
	if len(ids) > maxOwned {
		ids = ids[len(ids)-maxOwned:]
	}
	session.Values[ownedKey] = ids
	if err := session.Save(r, w); err != nil {
		log.Error("save-token session save failed", slog.String("err", err.Error()))
		if _, err := s.store.DeleteToken(r.Context(), id); err != nil {
			log.Error("save-token rollback failed", slog.Int64("id", id), slog.String("err", err.Error()))
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Info("token saved", slog.Int64("id", id), slog.String("label", label))
	writeJSON(w, http.StatusOK, model.ServiceResponse{OK: true, ID: &id})
}

func (s *server) updateBio(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)

	var req struct {
		ID     int64   `json:"id"`
		NewBio *string `json:"newBio"`
	}
	if !decodeJSON(w, r, &req, "id and newBio required") {
		return
	}
	if req.ID == 0 || req.NewBio == nil {
		writeError(w, http.StatusBadRequest, "id and newBio required")
		return
	}

	if !slices.Contains(owned(s.session(r)), req.ID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	tok, err := s.store.GetToken(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "token not found")
			return
		}
		log.Error("update-bio lookup failed", slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	accessToken, err := s.sealer.Open(tok.Sealed)
	if err != nil {
		log.Error("update-bio decrypt failed", slog.Int64("id", tok.ID), slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "decrypt_failed")
		return
	}

	if s.upstream.Mock() {
		log.Info("TARGET_API_URL not set, running in mock mode")
	}
	res, err := s.upstream.UpdateBio(r.Context(), accessToken, *req.NewBio)
	if err != nil {
		log.Error("upstream request failed", slog.String("err", err.Error()))
		detail, _ := json.Marshal(err.Error())
		writeJSON(w, http.StatusBadGateway, model.ServiceResponse{Error: "upstream_error", Detail: detail})
		return
	}
	if !res.OK {
		log.Warn("upstream returned error", slog.String("detail", string(res.Body)))
		writeJSON(w, http.StatusBadGateway, model.ServiceResponse{Error: "upstream_failed", Detail: res.Body})
		return
	}

	writeJSON(w, http.StatusOK, model.ServiceResponse{OK: true, Upstream: res.Body})
}

func (s *server) deleteToken(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)

	var req model.DeleteRequest
	if !decodeJSON(w, r, &req, "id required") {
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}

	session := s.session(r)
	ids := owned(session)
	if !slices.Contains(ids, req.ID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	n, err := s.store.DeleteToken(r.Context(), req.ID)
	if err != nil {
		log.Error("delete failed", slog.Int64("id", req.ID), slog.String("err", err.Error()))
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	session.Values[ownedKey] = slices.DeleteFunc(ids, func(id int64) bool { return id == req.ID })
	if err := session.Save(r, w); err != nil {
		log.Warn("delete session save failed", slog.String("err", err.Error()))
	}

	log.Info("token deleted", slog.Int64("id", req.ID), slog.Int64("rows", n))
	writeJSON(w, http.StatusOK, model.ServiceResponse{OK: true, Deleted: &n})
}

// session never fails: an unreadable cookie yields a fresh session.
func (s *server) session(r *http.Request) *sessions.Session {
	session, err := s.cookies.Get(r, sessionName)
	if err != nil {
		s.logger(r).Debug("discarding invalid session cookie", slog.String("err", err.Error()))
	}
	return session
}

func owned(session *sessions.Session) []int64 {
	ids, _ := session.Values[ownedKey].([]int64)
	return ids
}
