// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package ir

// TemplateContextKind taxonomizes where a template interpolation point sits
// in the rendered output (spec §3/§4.2).
type TemplateContextKind string

const (
	ContextHTMLText     TemplateContextKind = "HTML_TEXT"
	ContextRawHTML      TemplateContextKind = "RAW_HTML"
	ContextURLAttr      TemplateContextKind = "URL_ATTR"
	ContextEventHandler TemplateContextKind = "EVENT_HANDLER"
	ContextStyle        TemplateContextKind = "STYLE"
)

// EscapeMode records the framework's default treatment of a slot's value.
type EscapeMode string

const (
	EscapeAuto     EscapeMode = "AUTO"
	EscapeNone     EscapeMode = "NONE"
	EscapeJSString EscapeMode = "JS_STRING"
)

// rawHTMLDirectives names the template constructs that bypass auto-escaping
// and inject markup verbatim — the spec's worked example (S4) names v-html
// and dangerouslySetInnerHTML explicitly.
var rawHTMLDirectives = map[string]bool{
	"v-html":                 true,
	"dangerouslySetInnerHTML": true,
	"innerHTML":              true,
}

// urlBearingAttrs names attributes whose value is interpreted as a URL.
var urlBearingAttrs = map[string]bool{
	"href":   true,
	"src":    true,
	"action": true,
	"srcdoc": true,
	"formaction": true,
}

// TemplateSlot is a context-tagged interpolation point inside a template
// language, used by security rules without re-parsing the template.
type TemplateSlot struct {
	ID          string
	FilePath    string
	Span        Span
	Expr        string
	ContextKind TemplateContextKind
	IsSink      bool
	EscapeMode  EscapeMode
}

// ClassifyAttrContext infers a TemplateSlot's context and sink/escape
// status from the surrounding attribute or directive name, following the
// taxonomy in spec §4.2. attrOrDirective is the attribute name (e.g.
// "href", "dangerouslySetInnerHTML") or directive name (e.g. "v-html") as
// written, matched case-sensitively; isEventHandler reports whether the
// attribute is an event handler (e.g. "onclick", "@click").
func ClassifyAttrContext(attrOrDirective string, isEventHandler bool) (TemplateContextKind, bool, EscapeMode) {
	switch {
	case rawHTMLDirectives[attrOrDirective]:
		return ContextRawHTML, true, EscapeNone
	case isEventHandler:
		return ContextEventHandler, false, EscapeJSString
	case urlBearingAttrs[attrOrDirective]:
		return ContextURLAttr, true, EscapeAuto
	case attrOrDirective == "style":
		return ContextStyle, false, EscapeAuto
	default:
		return ContextHTMLText, false, EscapeAuto
	}
}

// NewTemplateSlot builds a slot, inferring ID from file/span/expr.
func NewTemplateSlot(filePath string, span Span, expr string, ctxKind TemplateContextKind, isSink bool, escape EscapeMode) TemplateSlot {
	return TemplateSlot{
		ID:          OccurrenceID(filePath, span, OccurrenceRole("slot:"+expr)),
		FilePath:    filePath,
		Span:        span,
		Expr:        expr,
		ContextKind: ctxKind,
		IsSink:      isSink,
		EscapeMode:  escape,
	}
}
