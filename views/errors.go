package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/shelfadmin/handler"
)

func ErrorPage(params handler.ErrorPageParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<section class="card error-page"><h1>`)
		p.number(params.StatusCode)
		p.raw(`</h1><p class="message">`)
		p.text(params.Message)
		p.raw(`</p>`)
		if params.Detail != "" {
			p.raw(`<pre class="detail">`)
			p.text(params.Detail)
			p.raw(`</pre>`)
		}
		if params.RequestID != "" {
			p.raw(`<p class="request-id">Request ID: <code>`)
			p.text(params.RequestID)
			p.raw(`</code></p>`)
		}
		p.raw(`<p><a href="/">Home</a>`)
		if params.RetryURL != "" {
			p.raw(` · <a`)
			p.attr("href", params.RetryURL)
			p.raw(`>Try again</a>`)
		}
		p.raw(`</p></section>`)
	})
	return Layout("Error "+strconv.Itoa(params.StatusCode), "", body)
}

// ErrorToast is prepended to #toast-container for DataStar requests.
func ErrorToast(params handler.ErrorToastParams) templ.Component {
	return component(func(p *page) {
		p.raw(`<div role="alert"`)
		p.attr("class", "toast toast-"+params.Type)
		p.raw(`>`)
		p.text(params.Message)
		if params.RequestID != "" {
			p.raw(` <small>`)
			p.text(params.RequestID)
			p.raw(`</small>`)
		}
		p.raw(`</div>`)
	})
}
