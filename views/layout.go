package views

import "github.com/a-h/templ"

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"

// Layout wraps body in the document shell. The navigation is shown only
// when userName is set.
func Layout(title, userName string, body templ.Component) templ.Component {
	return component(func(p *page) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(` · Shelf Admin</title>`)
		p.raw(`<script type="module"`)
		p.attr("src", datastarScript)
		p.raw(`></script></head><body>`)

		if userName != "" {
			p.raw(`<header class="topbar"><nav>`)
			p.raw(`<a href="/authors">Authors</a> <a href="/books">Books</a> <a href="/profile">Profile</a>`)
			p.raw(`</nav><div class="user"><span class="user-name">`)
			p.text(userName)
			p.raw(`</span><form action="/logout" method="POST"><button type="submit">Log out</button></form></div></header>`)
		}

		p.raw(`<div id="toast-container" aria-live="polite"></div><main>`)
		p.child(body)
		p.raw(`</main></body></html>`)
	})
}
