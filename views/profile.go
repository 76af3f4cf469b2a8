package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/shelfadmin/modules/profile"
)

func ProfilePage(params profile.ProfilePageParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<h1>Profile</h1>`)
		p.notice(params.Flash)
		p.raw(`<form class="profile-form" action="/profile" method="POST">`)
		p.methodOverride("PUT")
		p.formError(params.FormError)
		p.field("Email", "email", "email", params.Form.Email, params.Errors, "readonly")
		p.field("First name", "text", "first_name", params.Form.FirstName, params.Errors, "required")
		p.field("Last name", "text", "last_name", params.Form.LastName, params.Errors, "required")

		p.raw(`<label class="field"><span>Gender</span><select name="gender">`)
		for _, g := range profile.Genders {
			p.raw(`<option`)
			p.attr("value", g)
			if g == params.Form.Gender {
				p.raw(` selected`)
			}
			p.raw(`>`)
			if g == "" {
				p.raw(`Prefer not to say`)
			} else {
				p.text(g)
			}
			p.raw(`</option>`)
		}
		p.raw(`</select>`)
		p.fieldError("gender", params.Errors)
		p.raw(`</label><button type="submit">Save</button></form>`)
	})
	return Layout("Profile", params.UserName, body)
}
