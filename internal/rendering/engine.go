// Package rendering lays out resume documents into visual trees, one strategy per template.
package rendering

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// Renderer is a template layout strategy. Render must be deterministic and must
// not modify doc.
type Renderer interface {
	ID() types.TemplateID
	Render(doc *types.ResumeDocument) Node
}

var renderers = map[types.TemplateID]Renderer{
	types.TemplateTechSidebar:          techSidebar{},
	types.TemplateBusinessProfessional: businessProfessional{},
	types.TemplateModernMinimal:        modernMinimal{},
	types.TemplateElegantTimeline:      elegantTimeline{},
	types.TemplateCreativeModern:       creativeModern{},
	types.TemplateBJetProfessional:     bjetProfessional{},
}

// Result is the outcome of a render
type Result struct {
	Template  types.TemplateID `json:"template"`  // template actually used
	Requested types.TemplateID `json:"requested"` // template named by the document
	FellBack  bool             `json:"fellBack"`
	Reason    string           `json:"reason,omitempty"`
	Tree      Node             `json:"tree"`
}

// Lookup returns the renderer registered for id
func Lookup(id types.TemplateID) (Renderer, bool) {
	r, ok := renderers[id]
	return r, ok
}

// Render lays out doc with the template it names. Unknown template ids fall back
// to the default template.
func Render(doc *types.ResumeDocument) Result {
	if doc == nil {
		empty := types.NewDocument()
		doc = &empty
	}
	return RenderAs(doc, doc.Template)
}

// RenderAs lays out doc with the given template regardless of doc.Template
func RenderAs(doc *types.ResumeDocument, id types.TemplateID) Result {
	res := Result{Template: id, Requested: id}
	r, ok := Lookup(id)
	if !ok {
		r = renderers[types.DefaultTemplate]
		res.Template = types.DefaultTemplate
		res.FellBack = true
		res.Reason = fmt.Sprintf("unknown template %q, using %s", id, types.DefaultTemplate)
	}
	view := doc.Clone()
	res.Tree = r.Render(&view)
	return res
}
