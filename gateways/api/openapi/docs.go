package openapi

import (
	"bytes"
	"fmt"
	"html/template"
)

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

// DocsPage renders a Swagger UI page that loads the document from specURL.
func DocsPage(title, specURL string) ([]byte, error) {
	var buf bytes.Buffer
	err := docsPage.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{title, specURL})
	if err != nil {
		return nil, fmt.Errorf("failed to render docs page: %w", err)
	}
	return buf.Bytes(), nil
}
