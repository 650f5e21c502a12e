package routes

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 960px; padding: 32px 20px; font-family: Georgia, "Times New Roman", serif; color: #132019; }
    h1 { border-bottom: 2px solid #1f6f4a; padding-bottom: 8px; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #d8ddd6; padding: 8px 10px; text-align: left; font-size: 14px; }
    code { background: #0f172a; color: #e2e8f0; padding: 2px 6px; border-radius: 4px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p>Bearer-token API for slots, bookings, and feedback. All error bodies are
  <code>{"error": "..."}</code>.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Description</th></tr>
    {{ range .Endpoints }}
    <tr><td>{{ .Method }}</td><td><code>{{ .Path }}</code></td><td>{{ .Description }}</td></tr>
    {{ end }}
  </table>
</body>
</html>`

type docsEndpoint struct {
	Method      string
	Path        string
	Description string
}

var docsEndpoints = []docsEndpoint{
	{"POST", "/api/auth/register", "Create an account (coach or student) and receive a token"},
	{"POST", "/api/auth/login", "Exchange credentials for a token"},
	{"GET", "/api/auth/me", "Current authenticated user"},
	{"GET", "/api/slots", "List slots, filterable by coachId and isBooked"},
	{"POST", "/api/slots", "Publish a 2-hour availability slot (coach)"},
	{"GET", "/api/bookings", "List bookings for a student or coach"},
	{"POST", "/api/bookings", "Book an open slot (student)"},
	{"GET", "/api/calls", "Feedback history for the authenticated coach"},
	{"POST", "/api/calls", "Record feedback for a booking (coach, once per booking)"},
	{"PUT", "/api/calls/:id", "Revise previously recorded feedback (coach)"},
	{"PATCH", "/api/user/:id", "Update the caller's phone number"},
	{"GET", "/health", "Liveness probe"},
}

func registerDocsRoutes(app *fiber.App) {
	tmpl := template.Must(template.New("docs").Parse(docsIndexHTML))

	app.Get("/api/docs", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		err := tmpl.Execute(&buf, struct {
			Title     string
			Endpoints []docsEndpoint
		}{
			Title:     "CoachSched API",
			Endpoints: docsEndpoints,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("failed to render docs")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})
}
