package folio

import (
	"fmt"
	"html"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component with the given HTTP status code.
func Render(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func page(title, body string) templ.Component {
	return templ.Raw(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title></head>
<body>%s</body>
</html>`, html.EscapeString(title), body))
}

// landingView is the minimal server-rendered landing page. The real frontend
// is a separate SPA; this page exists so the bare server root is not a 404.
func landingView(settings SiteSettings) templ.Component {
	name := settings["site_name"]
	body := fmt.Sprintf(`<main><h1>%s</h1><p>%s</p><p><a href="/feed.xml">RSS</a> · <a href="/api/health">API status</a></p></main>`,
		html.EscapeString(settings["hero_title"]),
		html.EscapeString(settings["site_description"]))
	return page(name, body)
}

func notFoundView() templ.Component {
	return page("Not Found", `<main><h1>404</h1><p>Page not found.</p></main>`)
}

func serverErrorView() templ.Component {
	return page("Server Error", `<main><h1>500</h1><p>Something went wrong.</p></main>`)
}
