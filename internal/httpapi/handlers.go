package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vemurilakshmikanth/bill-splitter/internal/extraction"
	"github.com/vemurilakshmikanth/bill-splitter/internal/middleware"
	"github.com/vemurilakshmikanth/bill-splitter/internal/models"
	"github.com/vemurilakshmikanth/bill-splitter/internal/summary"
)

// maxUploadBytes bounds one upload request (all images together).
const maxUploadBytes = 32 << 20

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
	}
	sess, err := s.manager.Create(r.Context(), req.Roster)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadBills accepts either multipart image uploads (field "images",
// extracted through the vision service) or a JSON body of raw extraction
// outputs (normalized directly; useful when extraction ran elsewhere).
// Per-file failures are reported alongside the successes, never as a request
// failure: one bad image must not block the others.
func (s *Server) handleUploadBills(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var bills []models.Bill
	var failures []extraction.Failure

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			RawOutputs []string `json:"raw_outputs"`
		}
		if err := decodeBody(r, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		for i, raw := range req.RawOutputs {
			bill, err := extraction.Normalize(raw)
			if err != nil {
				failures = append(failures, extraction.Failure{
					Filename: "raw_outputs[" + strconv.Itoa(i) + "]",
					Err:      err,
				})
				continue
			}
			bills = append(bills, *bill)
		}
	} else {
		if s.extractor == nil {
			respondJSON(w, http.StatusServiceUnavailable,
				errorResponse{Error: "extraction service not configured"})
			return
		}
		files, err := readImages(r)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		bills, failures = extraction.ExtractAll(r.Context(), s.extractor, files, s.concurrency)
	}

	middleware.BillsExtracted.Add(float64(len(bills)))
	middleware.ExtractionFailures.Add(float64(len(failures)))

	sess, err := s.manager.AddBills(r.Context(), sessionID, bills)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, uploadResponse{
		Session:  toSessionResponse(sess),
		Added:    len(bills),
		Failures: toUploadFailures(failures),
	})
}

func readImages(r *http.Request) ([]extraction.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errors.New("expected multipart form with image files")
	}
	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		return nil, errors.New("no files in field \"images\"")
	}

	var files []extraction.File
	for _, h := range headers {
		name := strings.ToLower(h.Filename)
		if !strings.HasSuffix(name, ".png") && !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".jpeg") {
			return nil, errors.New("unsupported file type: " + h.Filename)
		}
		f, err := h.Open()
		if err != nil {
			return nil, errors.New("failed to open upload: " + h.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("failed to read upload: " + h.Filename)
		}
		files = append(files, extraction.File{Name: h.Filename, Data: data})
	}
	return files, nil
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	billNumber, itemNumber, ok := itemCoords(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	sess, err := s.manager.AssignParticipants(r.Context(), chi.URLParam(r, "sessionID"), billNumber, itemNumber, req.Participants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleAddVisitor(w http.ResponseWriter, r *http.Request) {
	billNumber, itemNumber, ok := itemCoords(w, r)
	if !ok {
		return
	}
	var req visitorRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	sess, err := s.manager.AddVisitor(r.Context(), chi.URLParam(r, "sessionID"), billNumber, itemNumber, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleSetPayer(w http.ResponseWriter, r *http.Request) {
	billNumber, err := strconv.Atoi(chi.URLParam(r, "billNumber"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bill number must be an integer"})
		return
	}
	var req payerRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	sess, err := s.manager.SetPayer(r.Context(), chi.URLParam(r, "sessionID"), billNumber, req.Payer)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Advance(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Back(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

func (s *Server) handleSettlement(w http.ResponseWriter, r *http.Request) {
	ledger, sess, err := s.manager.Settlement(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SettlementsComputed.Inc()
	respondJSON(w, http.StatusOK, toSettlementResponse(ledger, sess))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ledger, sess, err := s.manager.Settlement(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SettlementsComputed.Inc()

	currency := ""
	if len(sess.Bills) > 0 {
		currency = sess.Bills[0].Currency
	}
	text := summary.Render(sess.Bills, ledger, sess.Roster, currency)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func itemCoords(w http.ResponseWriter, r *http.Request) (billNumber, itemNumber int, ok bool) {
	billNumber, err := strconv.Atoi(chi.URLParam(r, "billNumber"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "bill number must be an integer"})
		return 0, 0, false
	}
	itemNumber, err = strconv.Atoi(chi.URLParam(r, "itemNumber"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "item number must be an integer"})
		return 0, 0, false
	}
	return billNumber, itemNumber, true
}
