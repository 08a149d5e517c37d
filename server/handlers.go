package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foliopilot/foliopilot/agent/agents/copilot"
	contractx "github.com/foliopilot/foliopilot/agent/contract"
	"github.com/foliopilot/foliopilot/page"
	"github.com/foliopilot/foliopilot/portfolio"
	"github.com/foliopilot/foliopilot/view"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("write json response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request body: %v", err))
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type pageSummary struct {
	ID     string      `json:"id"`
	Config page.Config `json:"config"`
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	ids := page.IDs()
	out := make([]pageSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, pageSummary{ID: id, Config: page.Lookup(id)})
	}
	writeJSON(w, http.StatusOK, out)
}

type pageResponse struct {
	ID         string           `json:"id"`
	Config     page.Config      `json:"config"`
	Descriptor *view.Descriptor `json:"descriptor"`
}

// handleGetPage serves the configuration and template for a page id.
// Unknown ids get the default configuration rather than a 404, so the
// client shell always has something to draw.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id := trimPathValue(r, "id")
	writeJSON(w, http.StatusOK, pageResponse{
		ID:         id,
		Config:     page.Lookup(id),
		Descriptor: page.Template(id),
	})
}

type renderRequest struct {
	Page       string           `json:"page,omitempty"`
	Descriptor *view.Descriptor `json:"descriptor,omitempty"`
	Context    view.Context     `json:"context,omitempty"`
	Shell      bool             `json:"shell,omitempty"`
	Title      string           `json:"title,omitempty"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

// handleRender interprets a descriptor tree against a substitution context
// and returns HTML. Callers pass either an inline descriptor or a page id.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	descriptor := req.Descriptor
	if descriptor == nil {
		if strings.TrimSpace(req.Page) == "" {
			writeError(w, http.StatusBadRequest, "either descriptor or page is required")
			return
		}
		descriptor = page.Template(req.Page)
	}

	node := s.interpreter.Render(descriptor, req.Context)
	html := view.MarshalHTML(node)

	if req.Shell {
		shell, err := view.RenderShell(html, map[string]any{"context": req.Context}, req.Title)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render document shell")
			return
		}
		html = shell
	}

	writeJSON(w, http.StatusOK, renderResponse{HTML: html})
}

type copilotMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type copilotMessageResponse struct {
	SessionID string                 `json:"session_id"`
	Reply     contractx.CopilotReply `json:"reply"`
	HTML      string                 `json:"html,omitempty"`
}

// haikuViewContext maps a reply onto the haiku page template's markers.
func haikuViewContext(reply contractx.CopilotReply) view.Context {
	ctx := view.Context{"topic": reply.Topic}
	lineKeys := []string{"line_one", "line_two", "line_three"}
	for i, key := range lineKeys {
		if i < len(reply.Haiku.English) {
			ctx[key] = reply.Haiku.English[i]
		}
	}
	if len(reply.Haiku.ImageNames) > 0 {
		ctx["image"] = reply.Haiku.ImageNames[0]
	}
	return ctx
}

func (s *Server) handleCopilotMessage(w http.ResponseWriter, r *http.Request) {
	if s.copilot == nil {
		writeError(w, http.StatusServiceUnavailable, "copilot is not configured")
		return
	}

	var req copilotMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.copilot.HandleMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, copilot.ErrInvalidMessage), errors.Is(err, copilot.ErrInvalidSession):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, contractx.ErrSchemaViolation), errors.Is(err, contractx.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error().Err(err).Str("session_id", sessionID).Msg("copilot turn failed")
			writeError(w, http.StatusBadGateway, "copilot turn failed")
		}
		return
	}

	node := s.interpreter.Render(page.Template("haiku"), haikuViewContext(reply))
	writeJSON(w, http.StatusOK, copilotMessageResponse{
		SessionID: sessionID,
		Reply:     reply,
		HTML:      view.MarshalHTML(node),
	})
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if s.valuer == nil {
		writeError(w, http.StatusServiceUnavailable, "portfolio is not configured")
		return
	}

	userID := trimPathValue(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	summary, err := s.valuer.Summarize(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("summarize portfolio failed")
		writeError(w, http.StatusInternalServerError, "summarize portfolio failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleUpsertHolding(w http.ResponseWriter, r *http.Request) {
	if s.holdings == nil {
		writeError(w, http.StatusServiceUnavailable, "portfolio is not configured")
		return
	}

	var holding portfolio.Holding
	if !decodeBody(w, r, &holding) {
		return
	}
	holding.UserID = trimPathValue(r, "userID")

	if err := s.holdings.Upsert(r.Context(), &holding); err != nil {
		if errors.Is(err, portfolio.ErrInvalidHolding) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("user_id", holding.UserID).Msg("upsert holding failed")
		writeError(w, http.StatusInternalServerError, "upsert holding failed")
		return
	}
	writeJSON(w, http.StatusOK, holding)
}

func (s *Server) handleRemoveHolding(w http.ResponseWriter, r *http.Request) {
	if s.holdings == nil {
		writeError(w, http.StatusServiceUnavailable, "portfolio is not configured")
		return
	}

	userID := trimPathValue(r, "userID")
	symbol := trimPathValue(r, "symbol")

	if err := s.holdings.Remove(r.Context(), userID, symbol); err != nil {
		if errors.Is(err, portfolio.ErrHoldingNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("symbol", symbol).Msg("remove holding failed")
		writeError(w, http.StatusInternalServerError, "remove holding failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
