package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/danmuck/pointcode/internal/pointcode/schema"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 16

type convertRequest struct {
	Input          string `json:"input"`
	Representation string `json:"representation"`
	InputSchema    string `json:"input_schema"`
	TargetSchema   string `json:"target_schema"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": s.cfg.Name,
		"uptime":  time.Since(s.appeared).Round(time.Second).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.conv.Registry().Len() == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no schemas"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	bits := 0
	if raw := r.URL.Query().Get("bits"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "Invalid bits", err)
			return
		}
		bits = n
	}
	list := s.conv.Schemas(bits)
	if len(list) == 0 {
		writeBadRequest(w, "Unsupported table width", convert.ErrUnknownWidth)
		return
	}
	writeJSON(w, http.StatusOK, infos(list))
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	sc, err := s.conv.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sc.Info())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body", err)
		return
	}
	notation, err := convert.ParseNotation(req.Representation)
	if err != nil {
		writeBadRequest(w, "Invalid representation", err)
		return
	}
	target := strings.TrimSpace(req.TargetSchema)
	if target == "" {
		target = s.cfg.DefaultTarget
	}
	v, err := s.conv.Convert(convert.Input{
		Text:     req.Input,
		Notation: notation,
		SchemaID: req.InputSchema,
	}, target)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleRepresentations serves the comparison table. value is decimal unless
// base=16; when schema is set, value is formatted text of that schema and
// bits is ignored.
func (s *Server) handleRepresentations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := convert.Input{Text: q.Get("value"), Notation: convert.NotationDecimal}
	switch base := q.Get("base"); base {
	case "", "10":
	case "16":
		in.Notation = convert.NotationHexadecimal
	default:
		writeBadRequest(w, "Invalid base", errors.New("base must be 10 or 16"))
		return
	}
	if id := q.Get("schema"); id != "" {
		in.Notation = convert.NotationFormatted
		in.SchemaID = id
	}
	bits := s.cfg.DefaultWidth
	if raw := q.Get("bits"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeBadRequest(w, "Invalid bits", err)
			return
		}
		bits = n
	}
	rows, err := s.conv.Representations(in, bits)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRadix(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := pointcode.Decimal
	if raw := q.Get("from"); raw != "" {
		b, ok := pointcode.ParseBase(raw)
		if !ok {
			writeBadRequest(w, "Invalid base", errors.New("unknown base "+strconv.Quote(raw)))
			return
		}
		from = b
	}
	var (
		b   convert.Breakdown
		err error
	)
	if raw := q.Get("to"); raw != "" {
		to, ok := pointcode.ParseBase(raw)
		if !ok {
			writeBadRequest(w, "Invalid base", errors.New("unknown base "+strconv.Quote(raw)))
			return
		}
		b, err = s.conv.ConvertBase(q.Get("value"), from, to)
	} else {
		b, err = s.conv.Breakdown(q.Get("value"), from)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func infos(list []schema.Schema) []schema.Info {
	out := make([]schema.Info, 0, len(list))
	for _, sc := range list {
		out = append(out, sc.Info())
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps conversion errors to their kind and user-facing message.
func writeError(w http.ResponseWriter, status int, err error) {
	if ce, ok := pointcode.AsError(err); ok {
		writeJSON(w, status, errorBody{Error: errorDetail{
			Kind:    ce.Kind.String(),
			Message: ce.UserMessage(),
			Detail:  ce.Error(),
		}})
		return
	}
	writeBadRequest(w, "Invalid request", err)
}

func writeBadRequest(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
		Kind:    "bad_request",
		Message: message,
		Detail:  err.Error(),
	}})
}
