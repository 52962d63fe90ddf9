package dom

import (
	"bytes"
	"mime/multipart"

	"golang.org/x/net/html"

	"careerflow/internal/errors"
)

// FormField is a single name/value pair collected from a form.
type FormField struct {
	Name  string
	Value string
}

// FilePayload carries the bytes for a file input. A headless document has no
// filesystem behind its file inputs, so callers attach payloads alongside the
// submit event.
type FilePayload struct {
	Field    string
	Filename string
	Content  []byte
}

// FormFields collects the submittable fields of a form subtree: text-like
// inputs, checked checkboxes and radios, selects (selected or first option),
// and textareas. Buttons, submits, and file inputs are excluded; files travel
// separately as FilePayload values.
func FormFields(form *html.Node) []FormField {
	var fields []FormField
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input":
				if f, ok := inputField(n); ok {
					fields = append(fields, f)
				}
			case "textarea":
				if name := Attr(n, "name"); name != "" {
					fields = append(fields, FormField{Name: name, Value: Text(n)})
				}
			case "select":
				if f, ok := selectField(n); ok {
					fields = append(fields, f)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)
	return fields
}

func inputField(n *html.Node) (FormField, bool) {
	name := Attr(n, "name")
	if name == "" {
		return FormField{}, false
	}
	switch Attr(n, "type") {
	case "submit", "button", "reset", "image", "file":
		return FormField{}, false
	case "checkbox", "radio":
		if !HasAttr(n, "checked") {
			return FormField{}, false
		}
		value := Attr(n, "value")
		if value == "" {
			value = "on"
		}
		return FormField{Name: name, Value: value}, true
	default:
		return FormField{Name: name, Value: Attr(n, "value")}, true
	}
}

func selectField(n *html.Node) (FormField, bool) {
	name := Attr(n, "name")
	if name == "" {
		return FormField{}, false
	}
	var first, selected *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "option" {
			if first == nil {
				first = n
			}
			if selected == nil && HasAttr(n, "selected") {
				selected = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	option := selected
	if option == nil {
		option = first
	}
	if option == nil {
		return FormField{}, false
	}
	value := Attr(option, "value")
	if value == "" {
		value = Text(option)
	}
	return FormField{Name: name, Value: value}, true
}

// EncodeMultipart builds a multipart/form-data body from collected fields and
// file payloads, returning the body and its Content-Type.
func EncodeMultipart(fields []FormField, files []FilePayload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, f := range fields {
		if err := writer.WriteField(f.Name, f.Value); err != nil {
			return nil, "", errors.Wrap(err, "failed to encode form field")
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to encode form file")
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", errors.Wrap(err, "failed to write form file")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "failed to finalize multipart body")
	}
	return body, writer.FormDataContentType(), nil
}
