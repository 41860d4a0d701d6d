package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
	"golang.org/x/sync/errgroup"
)

// RenderResponse is a laid-out document with its preview geometry
type RenderResponse struct {
	rendering.Result
	Layout   validation.Layout         `json:"layout"`
	Overflow validation.OverflowReport `json:"overflow"`
}

// GalleryEntry is one template's rendering of a document
type GalleryEntry struct {
	Template types.TemplateConfig      `json:"template"`
	Tree     rendering.Node            `json:"tree"`
	Overflow validation.OverflowReport `json:"overflow"`
}

// renderResponse renders doc with template, or with doc's own template when empty.
// Overflow here always uses the estimator; browser measurement is reserved for sessions.
func (s *Server) renderResponse(doc *types.ResumeDocument, template types.TemplateID) RenderResponse {
	var res rendering.Result
	if template != "" {
		res = rendering.RenderAs(doc, template)
	} else {
		res = rendering.Render(doc)
	}
	if res.FellBack {
		log.Printf("[render] %s", res.Reason)
	}
	s.metrics.ObserveRender(string(res.Template), res.FellBack)

	overflow := validation.CheckOverflow(validation.EstimateHeight(res.Tree, doc.PageFormat), doc.PageFormat)
	overflow.Source = validation.EstimateMeasurer{}.Name()
	return RenderResponse{
		Result:   res,
		Layout:   validation.ComputeLayout(doc.PageFormat, validation.DefaultContainerWidth, validation.DefaultContainerHeight),
		Overflow: overflow,
	}
}

// handleTemplates lists the template catalog
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": types.Templates()})
}

// handleRender lays out a document supplied in the request
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.renderResponse(req.Resume, req.Template))
}

// handleRenderHTML returns the standalone printable HTML page for a document
func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	s.writePage(w, req.Resume, req.Template)
}

// writePage renders doc and writes it as an HTML page
func (s *Server) writePage(w http.ResponseWriter, doc *types.ResumeDocument, template types.TemplateID) {
	res := s.renderResponse(doc, template)
	page, err := rendering.HTML(res.Tree, validation.PageSettingsFor(doc))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("[render] failed to write page: %v", err)
	}
}

// handleGallery renders one document with every template concurrently
func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	var req GalleryRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	entries, err := renderGallery(r.Context(), req.Resume)
	if err != nil {
		s.fail(w, err)
		return
	}
	for _, e := range entries {
		s.metrics.ObserveRender(string(e.Template.ID), false)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"entries": entries})
}

// renderGallery renders doc once per catalog template, in catalog order
func renderGallery(ctx context.Context, doc *types.ResumeDocument) ([]GalleryEntry, error) {
	catalog := types.Templates()
	entries := make([]GalleryEntry, len(catalog))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for i, tmpl := range catalog {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res := rendering.RenderAs(doc, tmpl.ID)
			if res.FellBack {
				return fmt.Errorf("template %s has no renderer", tmpl.ID)
			}
			overflow := validation.CheckOverflow(validation.EstimateHeight(res.Tree, doc.PageFormat), doc.PageFormat)
			overflow.Source = validation.EstimateMeasurer{}.Name()

			mu.Lock()
			entries[i] = GalleryEntry{Template: tmpl, Tree: res.Tree, Overflow: overflow}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// handlePortableImport validates an uploaded portable file and returns the
// decoded document. The file may be the raw body or a multipart "file" field.
func (s *Server) handlePortableImport(w http.ResponseWriter, r *http.Request) {
	doc, err := readPortable(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": doc})
}

func readPortable(w http.ResponseWriter, r *http.Request) (*types.ResumeDocument, error) {
	r.Body = http.MaxBytesReader(w, r.Body, portable.MaxFileSize+1<<20)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, &ErrValidation{Field: "file", Message: err.Error()}
		}
		defer file.Close()
		return portable.ImportReader(file)
	}
	return portable.ImportReader(r.Body)
}

// handlePortableExport returns a document as a downloadable portable file
func (s *Server) handlePortableExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	s.writePortable(w, req.Resume)
}

func (s *Server) writePortable(w http.ResponseWriter, doc *types.ResumeDocument) {
	data, err := portable.Export(doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, portable.Filename(time.Now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[portable] failed to write export: %v", err)
	}
}
