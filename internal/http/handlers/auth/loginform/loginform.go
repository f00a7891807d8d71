// Package loginform реализует HTTP-обработчик страницы входа администратора.
//
// Handler отдает минимальную HTML-форму, которая отправляет пароль
// JSON-запросом на POST /login и при успехе переходит на /dashboard.
package loginform

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/newsletter-service/internal/lib/sl"
)

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Admin Login</title></head>
<body>
<h1>Admin Login</h1>
<form id="login-form">
  <input type="password" id="password" placeholder="Password" required>
  <button type="submit">Log in</button>
</form>
<p id="error" style="color:red"></p>
<script>
document.getElementById("login-form").addEventListener("submit", async (e) => {
  e.preventDefault();
  const resp = await fetch("/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({password: document.getElementById("password").value}),
  });
  const body = await resp.json();
  if (resp.ok) {
    window.location.href = body.data.redirect_url;
  } else {
    document.getElementById("error").textContent = body.error;
  }
});
</script>
</body>
</html>`

// Handler обрабатывает HTTP-запросы страницы входа.
type Handler struct {
	log  *slog.Logger
	tmpl *template.Template
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log:  log,
		tmpl: template.Must(template.New("login").Parse(loginPage)),
	}
}

// ServeHTTP godoc
// @Summary Страница входа администратора
// @Description Отдает HTML-форму входа.
// @Tags Auth
// @Produce  html
// @Success 200 "Форма входа"
// @Router /login [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.loginform"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, nil); err != nil {
		log.Error("failed to render login page", sl.Err(err))
	}
}
