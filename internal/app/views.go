package app

import (
	"net/http"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// views serves the HTML placeholder pages: landing, auth error, and the
// privacy/data-deletion pages the provider requires for production apps.
type views struct {
	sessionStore session.Store
	serializer   auth.Serializer
}

func (v views) registerRoutes(r *gin.Engine) {
	r.GET("/", v.landing)
	r.GET("/auth/error", v.authError)
	r.GET("/privacy", v.privacy)
	r.GET("/data-deletion", v.dataDeletion)
}

func (v views) landing(c *gin.Context) {
	if v.authenticated(c) {
		c.Data(http.StatusOK, htmlContentType, []byte(landingAuthenticatedHTML))
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(landingAnonymousHTML))
}

// authenticated reports whether the request carries a live session with
// an identity. Viewing the landing page never creates a session.
func (v views) authenticated(c *gin.Context) bool {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	sess, err := v.sessionStore.Get(c.Request.Context(), cookie.Value)
	if err != nil || sess == nil {
		return false
	}

	_, err = v.serializer.Deserialize(sess.Identity)
	return err == nil
}

func (v views) authError(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, []byte(authErrorHTML))
}

func (v views) privacy(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, []byte(privacyHTML))
}

func (v views) dataDeletion(c *gin.Context) {
	c.Data(http.StatusOK, htmlContentType, []byte(dataDeletionHTML))
}

const landingAnonymousHTML = `<h1>Report Automation Backend</h1>
<p>Please log in to continue.</p>
<a href="/auth/login">Log in with Facebook</a>`

const landingAuthenticatedHTML = `<h1>Report Automation Backend</h1>
<p>You are authenticated.</p>
<a href="/api/profile">View profile and access token</a>
<br>
<a href="/api/ad-accounts">View ad accounts</a>
<br>
<a href="/auth/logout">Log out</a>`

const authErrorHTML = `<h1>Something went wrong during authentication.</h1>
<a href="/">Try again</a>`

const privacyHTML = `<h1>Privacy Policy</h1>
<p>This is a placeholder privacy policy for the report automation app.</p>`

const dataDeletionHTML = `<h1>Data Deletion Instructions</h1>
<p>To delete your data, remove the app from your business integrations list on Facebook.</p>`
