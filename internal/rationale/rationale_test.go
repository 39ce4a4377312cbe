package rationale

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testContext = AlertContext{
	Symbol:      "SAP.DE",
	CompanyName: "SAP SE",
	DeltaPct:    -0.6,
	Price:       99.4,
	Currency:    "EUR",
}

func TestOpenRouterExplain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		fmt.Fprint(w, `{
			"choices": [{"message": {"role": "assistant", "content": " Sektorweite Korrektur im Tech-Sektor. "}}]
		}`)
	}))
	defer srv.Close()

	s := newOpenRouter("test-key", "test-model", srv.URL)
	text := s.Explain(context.Background(), testContext)

	assert.Equal(t, "Sektorweite Korrektur im Tech-Sektor.", text)
}

func TestOpenRouterExplainDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newOpenRouter("test-key", "test-model", srv.URL)
	text := s.Explain(context.Background(), testContext)

	assert.Contains(t, text, "KI-Analyse fehlgeschlagen")
}

func TestOpenRouterExplainDegradesOnEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	s := newOpenRouter("test-key", "test-model", srv.URL)
	text := s.Explain(context.Background(), testContext)

	assert.Contains(t, text, "KI-Analyse fehlgeschlagen")
}

func TestDisabled(t *testing.T) {
	text := Disabled{}.Explain(context.Background(), testContext)
	assert.Contains(t, text, "nicht konfiguriert")
}
