package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url string
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return redirect(w, r, rr.url)
}

// Redirect answers 303 See Other, or navigates a DataStar client over SSE.
func Redirect(url string) Response {
	return redirectResponse{url: url}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(target)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return nil
}
