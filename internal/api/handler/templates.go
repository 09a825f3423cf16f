package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer satisfies echo.Renderer with one parsed template set. Pages are
// deliberately bare: the application's surface is the behaviour of its two
// authentication chains, not its styling.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.New("pages").Parse(pageTemplates))}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

const pageTemplates = `
{{define "home"}}<!DOCTYPE html>
<html><body>
<h1>Events App</h1>
{{if .LoginName}}<p>Signed in as {{.LoginName}} · <a href="/users/logout">Logout</a></p>
{{else}}<p><a href="/users/loginForm">Login</a> · <a href="/users/register">Register</a></p>{{end}}
<p><a href="/events">Browse events</a></p>
</body></html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html><body>
<h1>Login</h1>
{{if .Error}}<p>Invalid login name or password.</p>{{end}}
<form method="post" action="/login">
<input name="username" placeholder="Login name">
<input name="password" type="password" placeholder="Password">
<button type="submit">Login</button>
</form>
</body></html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html><body>
<h1>Register</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="/users/register">
<input name="username" placeholder="Login name">
<input name="password" type="password" placeholder="Password">
<button type="submit">Register</button>
</form>
</body></html>{{end}}

{{define "events"}}<!DOCTYPE html>
<html><body>
<h1>Events</h1>
<ul>{{range .Events}}
<li>{{.Name}} — {{.Date.Format "2006-01-02"}} — {{.Location}} — {{.Description}}
 <a href="/events/edit/{{.ID}}">edit</a> <a href="/events/delete/{{.ID}}">delete</a></li>
{{end}}</ul>
<p><a href="/events/search">Search</a> · <a href="/events/create">Create</a> · <a href="/">Home</a></p>
</body></html>{{end}}

{{define "searchForm"}}<!DOCTYPE html>
<html><body>
<h1>Search events</h1>
<form method="post" action="/events/search">
<input name="description" placeholder="Description contains">
<button type="submit">Search</button>
</form>
</body></html>{{end}}

{{define "eventForm"}}<!DOCTYPE html>
<html><body>
<h1>{{.Title}}</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="post" action="{{.Action}}">
<input name="name" value="{{.Event.Name}}" placeholder="Name">
<input name="date" value="{{.Event.Date.Format "2006-01-02"}}" placeholder="YYYY-MM-DD">
<input name="location" value="{{.Event.Location}}" placeholder="Location">
<input name="description" value="{{.Event.Description}}" placeholder="Description">
<button type="submit">Save</button>
</form>
</body></html>{{end}}
`
