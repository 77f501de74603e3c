package views

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

var errorTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Error</title>
</head>
<body>
<h1 class="text-danger">Error.</h1>
<h2 class="text-danger">An error occurred while processing your request.</h2>
{{- if .ShowRequestID}}
<p><strong>Request ID:</strong> <code>{{.RequestID}}</code></p>
{{- end}}
</body>
</html>
`))

// ErrorView carries the state rendered on the error page.
type ErrorView struct {
	RequestID string
}

// NewErrorView returns a view for the given request identifier.
func NewErrorView(requestID string) ErrorView {
	return ErrorView{RequestID: requestID}
}

// ShowRequestID reports whether the request identifier should be displayed.
func (v ErrorView) ShowRequestID() bool {
	return v.RequestID != ""
}

// Render writes the HTML error page.
func (v ErrorView) Render(w io.Writer) error {
	if err := errorTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("render error view: %w", err)
	}
	return nil
}

type errorViewJSON struct {
	RequestID     string `json:"requestId,omitempty"`
	ShowRequestID bool   `json:"showRequestId"`
}

// MarshalJSON encodes the view together with the derived ShowRequestID flag.
func (v ErrorView) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorViewJSON{
		RequestID:     v.RequestID,
		ShowRequestID: v.ShowRequestID(),
	})
}
