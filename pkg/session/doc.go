// Package session keeps the signed-in user in a single encrypted cookie.
//
// There is no server-side session table. The cookie carries the backend
// bearer token together with the user's id and display name, plus an absolute
// expiry checked on every read. Reading never fails: a missing, corrupted,
// expired or incomplete cookie yields the zero Data, which callers treat as
// anonymous.
//
//	mgr := session.New(cookies, session.Config{MaxAge: 60 * 24 * time.Hour})
//
//	// after a successful login
//	if err := mgr.Create(w, creds.Token, creds.UserID, creds.FirstName); err != nil {
//		return err
//	}
//
//	// later, in any handler behind mgr.Middleware
//	data := session.FromContext(r.Context())
//	if !data.IsAuthenticated() {
//		http.Redirect(w, r, "/login", http.StatusSeeOther)
//	}
package session
