package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/conteo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del borde HTTP: validación del formato del id de ruta.
// El id se valida antes de tocar el caso de uso, así que basta con el handler.
// ──────────────────────────────────────────────────────────────────────────────

func buildSessionApp() *fiber.App {
	app := fiber.New()
	// Sin casos de uso: el guard de formato corta antes de llegar a ellos.
	h := apphttp.NewSessionHandler(nil, nil)
	app.Get("/api/count-sessions/:id", h.GetByID)
	app.Put("/api/count-sessions/:id", h.Update)
	app.Delete("/api/count-sessions/:id", h.Delete)
	app.Post("/api/count-sessions/:id/items", h.SubmitItems)
	return app
}

// Un id que no es UUID debe responder 400 VALIDATION en todas las rutas con
// :id, nunca 404 (la sesión "no existe" es otra cosa que "el id es basura").
func TestSessionHandler_IDMalformadoRetorna400(t *testing.T) {
	app := buildSessionApp()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/count-sessions/not-a-uuid!!"},
		{http.MethodPut, "/api/count-sessions/not-a-uuid!!"},
		{http.MethodDelete, "/api/count-sessions/not-a-uuid!!"},
		{http.MethodPost, "/api/count-sessions/not-a-uuid!!/items"},
		{http.MethodGet, "/api/count-sessions/123"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
				"un id malformado debe ser 400, no 404 ni 500")
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "VALIDATION")
			assert.Contains(t, string(body), "id inválido")
		})
	}
}
