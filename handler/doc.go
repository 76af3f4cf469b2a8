// Package handler turns typed functions into http.HandlerFunc values.
//
// A handler receives a context and a request struct and returns a Response:
//
//	func showBook(ctx handler.Context, req BookRequest) handler.Response {
//		book, err := api.GetBook(ctx, token, req.ID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.Templ(views.BookPage(book))
//	}
//
//	r.Get("/books/{bookId}", handler.Wrap(showBook,
//		handler.WithBinders[handler.Context, BookRequest](binder.Path(chi.URLParam)),
//		handler.WithErrorHandler[handler.Context, BookRequest](errorHandler),
//	))
//
// Wrap builds the context, runs binders in order, applies decorators and
// renders the response. Any error from binding or rendering goes to the
// configured ErrorHandler, which NewErrorHandler implements as an HTML error
// page or, for DataStar requests, a toast patched over SSE.
//
// # DataStar
//
// Templ, TemplPartial and Redirect inspect the request. DataStar requests get
// Server-Sent Events that patch elements or navigate the browser; all other
// requests get plain HTML or a 303 redirect. TemplPartial is the usual way to
// update one region of a page (a table, a form) while still serving the full
// page to a normal navigation.
package handler
