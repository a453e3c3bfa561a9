package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/fetch"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/parsing"
	"github.com/jonathan/resume-recommender/internal/render"
	"github.com/jonathan/resume-recommender/internal/schemas"
	"github.com/jonathan/resume-recommender/internal/types"
)

// maxJSONBodyBytes bounds /api/chat and /api/parse bodies. Chat carries the
// full resume and posting text.
const maxJSONBodyBytes = 2 << 20

// AnalyzeResponse is the body returned by /api/analyze.
type AnalyzeResponse struct {
	*analysis.Result
	SessionToken string `json:"session_token,omitempty"`
}

// ChatRequest is the body accepted by /api/chat. Context comes either from
// SessionToken or from ResumeContent and JobContent.
type ChatRequest struct {
	Message       string `json:"message" validate:"required,max=4000"`
	ResumeContent string `json:"resume_content,omitempty"`
	JobContent    string `json:"job_content,omitempty"`
	Context       string `json:"context,omitempty"`
	SessionToken  string `json:"session_token,omitempty"`
}

// ParseRequest is the body accepted by /api/parse.
type ParseRequest struct {
	Text        string `json:"text" validate:"required"`
	IncludeHTML bool   `json:"include_html,omitempty"`
}

// ParseResponse is the body returned by /api/parse.
type ParseResponse struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	Structured      bool                   `json:"structured"`
	HTML            []string               `json:"html,omitempty"`
}

// ListResponse is the body returned by GET /api/analyses.
type ListResponse struct {
	Analyses any `json:"analyses"`
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
}

// handleRoot reports that the API is up
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume Recommender API is running"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{"status": "healthy"}
	if s.quota != nil {
		resp["llm_calls_remaining"] = s.quota.Remaining()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyze reviews an uploaded resume against a job posting
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readAnalyzeForm(w, r)
	if !ok {
		return
	}

	result, err := s.service.Analyze(r.Context(), req)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzeResponse(result))
}

// handleAnalyzeStream is handleAnalyze reporting progress as Server-Sent Events
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readAnalyzeForm(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	req.Progress = sse.WriteProgress

	result, err := s.service.Analyze(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Streamed analysis failed: %v", err)
		}
		sse.WriteError(status, PublicMessage(err))
		return
	}
	sse.WriteEvent(eventResult, s.analyzeResponse(result)) //nolint:errcheck
}

// readAnalyzeForm validates the multipart upload. On failure it has already
// written the response.
func (s *Server) readAnalyzeForm(w http.ResponseWriter, r *http.Request) (analysis.Request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large. Maximum size is %d MB", MaxUploadBytes>>20))
			return analysis.Request{}, false
		}
		s.errorResponse(w, http.StatusBadRequest, "No resume file provided")
		return analysis.Request{}, false
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "No resume file provided")
		return analysis.Request{}, false
	}
	defer file.Close()

	if header.Filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "No file selected")
		return analysis.Request{}, false
	}
	if !ingestion.AllowedResumeFile(header.Filename, s.allowedExtensions) {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Only %s files are allowed", extensionList(s.allowedExtensions)))
		return analysis.Request{}, false
	}

	jobLink := strings.TrimSpace(r.FormValue("job_link"))
	if jobLink == "" {
		s.errorResponse(w, http.StatusBadRequest, "No job link provided")
		return analysis.Request{}, false
	}
	if err := fetch.ValidateURL(jobLink); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job link: "+err.Error())
		return analysis.Request{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file")
		return analysis.Request{}, false
	}

	return analysis.Request{
		ResumeFilename: header.Filename,
		ResumeData:     data,
		JobURL:         jobLink,
	}, true
}

// analyzeResponse attaches a chat session token when the analysis was stored.
func (s *Server) analyzeResponse(result *analysis.Result) AnalyzeResponse {
	resp := AnalyzeResponse{Result: result}
	if s.sessions == nil || result.ID == uuid.Nil {
		return resp
	}
	token, err := s.sessions.IssueToken(result.ID)
	if err != nil {
		log.Printf("Failed to issue session token for %s: %v", result.ID, err)
		return resp
	}
	resp.SessionToken = token
	return resp
}

// handleChat answers a follow-up question about an analysis
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}

	var (
		reply *analysis.ChatReply
		err   error
	)
	if req.SessionToken != "" {
		if s.sessions == nil {
			s.failResponse(w, &ErrInvalidSession{Reason: errors.New("sessions are not enabled")})
			return
		}
		claims, verr := s.sessions.ValidateToken(req.SessionToken)
		if verr != nil {
			s.failResponse(w, verr)
			return
		}
		reply, err = s.service.ChatAbout(r.Context(), claims.AnalysisID, req.Message)
	} else {
		reply, err = s.service.Chat(r.Context(), analysis.ChatRequest{
			Message:       req.Message,
			ResumeContent: req.ResumeContent,
			JobContent:    req.JobContent,
			Context:       req.Context,
		})
	}
	if err != nil {
		s.failResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, reply)
}

// handleParse extracts recommendations from an analysis text without calling the model
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}

	recs := parsing.ParseRecommendations(req.Text)

	data, err := json.Marshal(recs)
	if err != nil {
		s.failResponse(w, fmt.Errorf("failed to encode recommendations: %w", err))
		return
	}
	if err := schemas.ValidateRecommendations(data); err != nil {
		s.failResponse(w, fmt.Errorf("recommendations failed schema validation: %w", err))
		return
	}

	resp := ParseResponse{Recommendations: recs, Structured: len(recs) > 0}
	if req.IncludeHTML {
		resp.HTML = make([]string, len(recs))
		for i, rec := range recs {
			resp.HTML[i] = render.HTML(rec)
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListAnalyses lists stored analyses, newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.failResponse(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.failResponse(w, err)
		return
	}

	summaries, err := s.service.List(r.Context(), limit, offset)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResponse{Analyses: summaries, Limit: limit, Offset: offset})
}

// handleGetAnalysis returns a stored analysis
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.failResponse(w, err)
		return
	}

	stored, err := s.service.Load(r.Context(), id)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteAnalysis removes a stored analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.failResponse(w, err)
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.failResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a bounded JSON body into dst and runs struct validation.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return validationError(fieldErrs[0])
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// validationError converts the first validator failure into an ErrValidation
// named after the JSON field.
func validationError(fe validator.FieldError) *ErrValidation {
	field := jsonFieldNames[fe.Field()]
	if field == "" {
		field = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: field, Message: "is required"}
	case "max":
		return &ErrValidation{Field: field, Message: "must be at most " + fe.Param() + " characters"}
	default:
		return &ErrValidation{Field: field, Message: "failed " + fe.Tag() + " validation"}
	}
}

var jsonFieldNames = map[string]string{
	"Message": "message",
	"Text":    "text",
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a non-negative integer"}
	}
	return v, nil
}
