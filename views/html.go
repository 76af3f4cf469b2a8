// Package views renders the admin pages. Components are plain
// templ.ComponentFunc values; every dynamic string goes through
// templ.EscapeString.
package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// TODO: port the components to .templ sources once templ generate runs in the build.

// page accumulates the first write error so rendering code stays linear.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) { p.raw(templ.EscapeString(s)) }

func (p *page) number(n int) { p.raw(strconv.Itoa(n)) }

// attr writes ` name="value"` with value escaped.
func (p *page) attr(name, value string) {
	p.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (p *page) child(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

// field renders a labelled input with its validation message.
func (p *page) field(label, typ, name, value string, errs map[string]string, extra ...string) {
	p.raw(`<label class="field">`)
	p.raw(`<span>`)
	p.text(label)
	p.raw(`</span><input`)
	p.attr("type", typ)
	p.attr("name", name)
	p.attr("value", value)
	for _, e := range extra {
		p.raw(" " + e)
	}
	if _, bad := errs[name]; bad {
		p.raw(` aria-invalid="true"`)
	}
	p.raw(`>`)
	p.fieldError(name, errs)
	p.raw(`</label>`)
}

func (p *page) fieldError(name string, errs map[string]string) {
	if msg, ok := errs[name]; ok {
		p.raw(`<small class="field-error">`)
		p.text(msg)
		p.raw(`</small>`)
	}
}

func (p *page) formError(msg string) {
	if msg != "" {
		p.raw(`<p class="form-error" role="alert">`)
		p.text(msg)
		p.raw(`</p>`)
	}
}

func (p *page) notice(msg string) {
	if msg != "" {
		p.raw(`<p class="notice" role="status">`)
		p.text(msg)
		p.raw(`</p>`)
	}
}

// methodOverride is the hidden _method input for PUT and DELETE forms.
func (p *page) methodOverride(method string) {
	p.raw(`<input type="hidden" name="_method"`)
	p.attr("value", method)
	p.raw(`>`)
}
