package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerUI_HostPerRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", SwaggerUI())

	hosts := []string{"api.example.com", "staging.example.com"}
	bodies := make([]string, 20)
	errs := make([]error, 20)

	var wg sync.WaitGroup
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "http://"+hosts[i%2]+"/swagger/doc.json", nil)
			req.Header.Set("X-Forwarded-Proto", "https, http")
			resp, err := app.Test(req, -1)
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			bodies[i], errs[i] = string(b), err
		}(i)
	}
	wg.Wait()

	for i, body := range bodies {
		require.NoError(t, errs[i])
		assert.Contains(t, body, fmt.Sprintf(`"host": %q`, hosts[i%2]))
		assert.Contains(t, body, `"https"`)
	}
}
