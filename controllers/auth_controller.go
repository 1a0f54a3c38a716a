package controllers

import (
	"crypto/subtle"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	config "github.com/phillip/ngo-portal-go/config"
	middleware "github.com/phillip/ngo-portal-go/middleware"
)

type loginInput struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ---------------- LOGIN ----------------
func Login(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginInput
		if _, err := bindInput(c, &in); err != nil {
			respondError(c, err)
			return
		}
		if in.Email == "" || in.Password == "" {
			respondError(c, apperrors.Missing("email", "password"))
			return
		}

		if !checkCredentials(d.Config.Admin, in.Email, in.Password) {
			log.Printf("[%s] rejected admin login for %q", c.GetString(middleware.RequestIDKey), in.Email)
			respondError(c, &apperrors.AuthError{Reason: "invalid email or password"})
			return
		}

		token, err := middleware.IssueSession(d.Config.Session.Secret, d.Config.Admin.Email, d.Config.Session.TTL, now())
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookie(c, d.Config, token)
		respondOK(c, gin.H{"email": d.Config.Admin.Email})
	}
}

// checkCredentials matches the email exactly and the password against the
// bcrypt hash when one is configured, else against the plain password.
func checkCredentials(admin config.AdminConfig, email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(admin.Email)) == 1
	if admin.PasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
		return emailOK && passOK
	}
	if admin.Password == "" {
		return false
	}
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(admin.Password)) == 1
	return emailOK && passOK
}

// ---------------- LOGOUT ----------------
func Logout(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookie(c, d.Config)
		respondOK(c, gin.H{})
	}
}

const loginPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin sign in</title></head>
<body>
<form id="login">
  <input name="email" type="email" placeholder="Email" required>
  <input name="password" type="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
  <p id="error" hidden></p>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const body = Object.fromEntries(new FormData(e.target));
  const res = await fetch("/api/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(body),
  });
  if (res.ok) { window.location = "/admin"; return; }
  const err = document.getElementById("error");
  err.textContent = (await res.json()).error;
  err.hidden = false;
});
</script>
</body>
</html>`

const adminPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin</title></head>
<body>
<h1>Back office</h1>
<p>Signed in as {{EMAIL}}.</p>
<form method="post" action="/api/logout"><button type="submit">Sign out</button></form>
</body>
</html>`

// LoginPage renders the sign-in form. It sits behind LoginPageGate.
func LoginPage(_ *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
	}
}

// AdminPage is the landing page behind the session gate.
func AdminPage(_ *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := html.EscapeString(c.GetString(middleware.AdminKey))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(strings.Replace(adminPage, "{{EMAIL}}", email, 1)))
	}
}
