package extractor

import (
	"strings"
	"testing"
)

func TestExtractHTMLStripsMarkup(t *testing.T) {
	raw := []byte(`<html>
<head>
  <title>Vendor quotation</title>
  <style>body { color: red; }</style>
  <script>console.log("tracking");</script>
</head>
<body>
  <h1>Quotation 42</h1>
  <p>Supplier: <b>Acme Pumps</b></p>
  <p>Total: 1200 EUR</p>
</body>
</html>`)

	got, err := extractHTML(raw)
	if err != nil {
		t.Fatalf("extractHTML() error = %v", err)
	}
	for _, fragment := range []string{"Vendor quotation", "Quotation 42", "Acme Pumps", "Total: 1200 EUR"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("extractHTML() = %q, missing %q", got, fragment)
		}
	}
	for _, markup := range []string{"color: red", "console.log", "<p>", "<b>"} {
		if strings.Contains(got, markup) {
			t.Fatalf("extractHTML() = %q, still contains %q", got, markup)
		}
	}
}
