package server

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"mortex-shop/internal/config"
	"mortex-shop/internal/handlers"
	"mortex-shop/internal/middleware"
	"mortex-shop/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const sessionCookie = "mortex_session"

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix := string(runes[:atIdx])
	domain := string(runes[atIdx:])
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return string(runes[0:2]) + "***" + domain
}

// money форматирует сумму в копейках как рубли.
func money(kopecks int64) string {
	sign := ""
	if kopecks < 0 {
		sign = "-"
		kopecks = -kopecks
	}
	return fmt.Sprintf("%s%d.%02d ₽", sign, kopecks/100, kopecks%100)
}

type Options struct {
	Config *config.Config
	Log    zerolog.Logger
	// Now: часы для сессий, по умолчанию time.Now.
	Now func() time.Time
}

func NewRouter(opts Options, h *handlers.Handlers) (*gin.Engine, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(gin.CustomRecovery(middleware.Recovery()))
	r.Use(middleware.Metrics())

	tmpl, err := web.Templates(template.FuncMap{
		"maskEmail": maskEmail,
		"money":     money,
	})
	if err != nil {
		return nil, fmt.Errorf("server: parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	store := cookie.NewStore([]byte(opts.Config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.Config.SessionMaxAge.Seconds()),
		Secure:   opts.Config.SessionSecure,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionCookie, store))
	r.Use(middleware.InjectIdentity(opts.Config.SessionMaxAge, now))

	// ГЛАВНАЯ
	r.GET("/", h.Index)

	// СТРАНИЦЫ
	for _, page := range handlers.Pages {
		switch page {
		case "signup", "login":
			r.GET("/"+page, middleware.RedirectIfLoggedIn(), h.Page(page))
		case "basket":
			r.GET("/basket", h.Basket)
		default:
			r.GET("/"+page, h.Page(page))
		}
	}
	r.GET("/logout", h.Logout)

	// API
	api := r.Group("/api")
	api.POST("/login", h.Login)
	api.POST("/register", h.Register)
	api.POST("/add-to-cart", h.AddToCart)

	// HEALTHCHECK + METRICS
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(h.NotFound)

	return r, nil
}
