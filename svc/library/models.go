package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WireLayout is the timestamp format the backend reads and writes.
const WireLayout = "2006-01-02T15:04:05.000Z"

// Timestamp decodes RFC 3339 or date-only strings and encodes WireLayout.
// Empty strings and null decode to the zero value.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := parseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(WireLayout))
}

// DateOnly formats the UTC date part for <input type="date">, or "" when zero.
func (t Timestamp) DateOnly() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

type Author struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Birthday     Timestamp `json:"birthday"`
	PlaceOfBirth string    `json:"place_of_birth"`
	Biography    string    `json:"biography"`
	Gender       string    `json:"gender,omitempty"`
	Books        []Book    `json:"books,omitempty"`
	// BooksCount is derived from Books; the backend does not send it.
	BooksCount int `json:"-"`
}

func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

type Book struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	ReleaseDate   Timestamp `json:"release_date"`
	Description   string    `json:"description"`
	ISBN          string    `json:"isbn"`
	Format        string    `json:"format"`
	NumberOfPages int       `json:"number_of_pages"`
	Author        *Author   `json:"author,omitempty"`
}

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
}

// Credentials is a successful login.
type Credentials struct {
	Token     string
	UserID    int
	FirstName string
}

type AuthorRef struct {
	ID int `json:"id"`
}

// BookInput is the body of book create and update calls. ReleaseDate must
// already be in WireLayout; see ParseFormDate.
type BookInput struct {
	Title         string    `json:"title"`
	Author        AuthorRef `json:"author"`
	ReleaseDate   string    `json:"release_date"`
	Description   string    `json:"description"`
	ISBN          string    `json:"isbn"`
	Format        string    `json:"format"`
	NumberOfPages int       `json:"number_of_pages"`
}

type UserInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
}

// BookFilter narrows ListBooks. Zero fields match everything.
type BookFilter struct {
	Title string
	Year  string
}

type tokenResponse struct {
	TokenKey string `json:"token_key"`
	User     struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
	} `json:"user"`
}

type errorBody struct {
	Message string `json:"message"`
}

// oneOrMany accepts either a JSON array or a single object.
type oneOrMany[T any] []T

func (m *oneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*m = nil
		return nil
	case b[0] == '[':
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*m = items
		return nil
	}
	var item T
	if err := json.Unmarshal(b, &item); err != nil {
		return err
	}
	*m = oneOrMany[T]{item}
	return nil
}

type listBody[T any] struct {
	Items oneOrMany[T] `json:"items"`
}
