// Package shelfadmin holds the pieces every page handler shares: the
// application Context that exposes the signed-in user, the Authenticated
// guard, and UserError for failures whose message is safe to show.
//
// Route groups live under modules/, the backend client under svc/library and
// HTML components under views/. cmd/server wires them together.
package shelfadmin
