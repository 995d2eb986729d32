package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"kastelo.dev/compressxml"
	"kastelo.dev/compressxml/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>COMPRESS XML parser</title></head>
<body>
<h1>COMPRESS XML parser</h1>
<p>Upload a Codeware COMPRESS XML file to preview its contents or download them as an Excel workbook.</p>
<form method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".xml" required>
<button formaction="/api/v1/preview?limit={{.PreviewRows}}">Preview (first {{.PreviewRows}} rows)</button>
<button formaction="/api/v1/convert">Download {{.DownloadName}}</button>
</form>
</body>
</html>
`))

type previewRow struct {
	Item       string `json:"item"`
	Path       string `json:"path"`
	Tag        string `json:"tag"`
	Value      string `json:"value"`
	Attributes string `json:"attributes"`
}

type previewResponse struct {
	Root  string       `json:"root"`
	Total int          `json:"total"`
	Rows  []previewRow `json:"rows"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.config.Convert); err != nil {
		s.logger.Error("render index failed", zap.Error(err))
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	limit, err := s.previewLimit(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	root, name, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	recs := compressxml.DocumentRecords(root)
	resp := previewResponse{
		Root:  root.Name,
		Total: len(recs),
		Rows:  []previewRow{},
	}
	for _, rec := range compressxml.Preview(root, limit) {
		resp.Rows = append(resp.Rows, previewRow(rec))
	}
	s.logger.Debug("preview", zap.String("file", name), zap.Int("total", resp.Total), zap.Int("limit", limit))
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	start := time.Now()
	root, name, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	sheets := compressxml.Convert(root)
	bs, err := excel.WorkbookXLSX(sheets)
	if err != nil {
		s.logger.Error("workbook generation failed", zap.String("conversion_id", id), zap.String("file", name), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "workbook generation failed")
		return
	}

	s.logger.Info("converted report",
		zap.String("conversion_id", id),
		zap.String("file", name),
		zap.Int("sheets", len(sheets)),
		zap.Int("bytes", len(bs)),
		zap.Duration("took", time.Since(start)),
	)

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.config.Convert.DownloadName))
	w.Header().Set("Content-Length", strconv.Itoa(len(bs)))
	w.Header().Set("X-Conversion-ID", id)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, bytes.NewReader(bs))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) previewLimit(r *http.Request) (int, error) {
	q := r.URL.Query().Get("limit")
	if q == "" {
		return s.config.Convert.PreviewRows, nil
	}
	limit, err := strconv.Atoi(q)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid limit %q", q)
	}
	return min(limit, s.config.Convert.MaxPreviewRows), nil
}

// parseUpload reads the "file" form field and parses it. On failure the
// error response has been written and ok is false.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (root *compressxml.Node, name string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Convert.MaxUploadBytes)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.respondError(w, http.StatusRequestEntityTooLarge, "upload too large")
		case errors.Is(err, http.ErrMissingFile):
			s.respondError(w, http.StatusBadRequest, "file is required")
		default:
			s.respondError(w, http.StatusBadRequest, "invalid upload")
		}
		return nil, "", false
	}
	defer file.Close()

	root, err = compressxml.Parse(file)
	if err != nil {
		s.logger.Warn("parse upload failed", zap.String("file", hdr.Filename), zap.Error(err))
		if errors.Is(err, compressxml.ErrMalformed) {
			s.respondError(w, http.StatusBadRequest, err.Error())
		} else {
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, "", false
	}
	return root, hdr.Filename, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
