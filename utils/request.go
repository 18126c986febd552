package utils

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
)

// ErrUnparseableBody is returned when the request body cannot be interpreted
var ErrUnparseableBody = errors.New("unparseable request body")

// DrinkPayload carries the raw create/update input. Title is nil when not
// supplied; Recipe is nil when not supplied and holds the raw JSON value
// otherwise.
type DrinkPayload struct {
	Title  *string         `json:"title"`
	Recipe json.RawMessage `json:"recipe"`
}

// TitleBlank reports whether a title was supplied as an empty string
func (p *DrinkPayload) TitleBlank() bool {
	return p.Title != nil && *p.Title == ""
}

// normalized treats a JSON null recipe as not supplied, the same way a null
// title decodes to a nil pointer
func (p *DrinkPayload) normalized() *DrinkPayload {
	if strings.TrimSpace(string(p.Recipe)) == "null" {
		p.Recipe = nil
	}
	return p
}

// RecipeBlank reports whether a recipe was supplied as an empty value
func (p *DrinkPayload) RecipeBlank() bool {
	if p.Recipe == nil {
		return false
	}
	raw := strings.TrimSpace(string(p.Recipe))
	return raw == "" || raw == `""`
}

// ParseDrinkPayload reads the drink fields from the request, with form
// values taking precedence over a JSON body, and the raw body attempted as
// JSON last. An empty body yields an empty payload; a body that is neither
// form nor JSON fails with ErrUnparseableBody.
func ParseDrinkPayload(r *http.Request) (*DrinkPayload, error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/x-www-form-urlencoded" || contentType == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, ErrUnparseableBody
		}
		if len(r.PostForm) > 0 {
			return payloadFromForm(r).normalized(), nil
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, ErrUnparseableBody
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return &DrinkPayload{}, nil
	}

	payload := &DrinkPayload{}
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, ErrUnparseableBody
	}
	return payload.normalized(), nil
}

func payloadFromForm(r *http.Request) *DrinkPayload {
	payload := &DrinkPayload{}
	if values, ok := r.PostForm["title"]; ok && len(values) > 0 {
		title := values[0]
		payload.Title = &title
	}
	if values, ok := r.PostForm["recipe"]; ok && len(values) > 0 {
		raw := values[0]
		if raw == "" {
			payload.Recipe = json.RawMessage(`""`)
		} else {
			payload.Recipe = json.RawMessage(raw)
		}
	}
	return payload
}
