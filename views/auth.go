package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/shelfadmin/modules/auth"
)

func LoginPage(params auth.LoginParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<section class="card narrow"><h1>Sign in</h1>`)
		p.child(LoginForm(params))
		p.raw(`</section>`)
	})
	return Layout("Sign in", "", body)
}

// LoginForm is also patched in alone by DataStar.
func LoginForm(params auth.LoginParams) templ.Component {
	return component(func(p *page) {
		p.raw(`<form id="login-form" action="/login" method="POST">`)
		p.formError(params.FormError)
		p.field("Email", "email", "email", params.Email, params.Errors, `autocomplete="username"`, "required")
		p.field("Password", "password", "password", "", params.Errors, `autocomplete="current-password"`, "required")
		p.raw(`<button type="submit">Sign in</button></form>`)
	})
}
