package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// requestPayload is a request with its body buffered so every source can read it.
type requestPayload struct {
	r           *http.Request
	body        []byte
	contentType string
}

func newRequestPayload(w http.ResponseWriter, r *http.Request) (*requestPayload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return &requestPayload{r: r, body: body, contentType: ct}, nil
}

// fieldSource extracts a named field from one part of the request, reporting
// false when the field is absent there.
type fieldSource struct {
	name    string
	extract func(p *requestPayload, field string) (string, bool)
}

// fieldSources are tried in order; the first source holding the field wins.
var fieldSources = []fieldSource{
	{name: "json", extract: fromJSON},
	{name: "form", extract: fromForm},
	{name: "query", extract: fromQuery},
}

// lookupField returns the field's value and the name of the source that held it.
func (p *requestPayload) lookupField(field string) (value, source string, ok bool) {
	for _, src := range fieldSources {
		if v, ok := src.extract(p, field); ok {
			return v, src.name, true
		}
	}
	return "", "", false
}

func fromJSON(p *requestPayload, field string) (string, bool) {
	if p.contentType != "application/json" || len(bytes.TrimSpace(p.body)) == 0 {
		return "", false
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(p.body, &doc); err != nil {
		return "", false
	}
	raw, ok := doc[field]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Non-string values are passed on verbatim and fail date validation.
		return strings.TrimSpace(string(raw)), true
	}
	return s, true
}

func fromForm(p *requestPayload, field string) (string, bool) {
	switch p.contentType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
	default:
		return "", false
	}

	// Parse a copy so the original request keeps its query-only view.
	r := p.r.Clone(p.r.Context())
	r.Body = io.NopCloser(bytes.NewReader(p.body))
	r.Form, r.PostForm, r.MultipartForm = nil, nil, nil

	var err error
	if p.contentType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return "", false
	}
	vals, ok := r.PostForm[field]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func fromQuery(p *requestPayload, field string) (string, bool) {
	vals, ok := p.r.URL.Query()[field]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
