package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/pkg/httpx"
	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"

	_ "github.com/Achrafml23/nutrition-app/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      CookieConfig

	store          store.Store
	SessionService *service.SessionService
	UserService    *service.UserService
	ResetService   *service.PasswordResetService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	cookies CookieConfig,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		cookies:      cookies,
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerPasswordReset()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Nutrition App Authentication API
//	@version		0.1.0
//	@description	Session management for the nutrition tracker: password login, rotating single-use refresh tokens delivered as HttpOnly cookies, and password recovery.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	login := &LoginHandler{
		UserService:    r.UserService,
		SessionService: r.SessionService,
		Cookies:        r.cookies,
	}

	// Credential guessing gets the tightest budget, keyed by IP plus the
	// submitted username so one address cannot spray many accounts and one
	// account cannot be sprayed from many forms behind a NAT.
	r.Mux.Handle("POST /login/access-token",
		httpx.Chain(login,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	refresh := &RefreshHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /login/refresh-token",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logout := &LogoutHandler{SessionService: r.SessionService, Cookies: r.cookies}
	r.Mux.Handle("POST /logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	testToken := &TestTokenHandler{UserService: r.UserService}
	r.Mux.Handle("POST /login/test-token",
		httpx.Chain(testToken,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPasswordReset() {
	recovery := &RecoverPasswordHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /password-recovery/{email}",
		httpx.Chain(recovery,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	reset := &ResetPasswordHandler{ResetService: r.ResetService}
	r.Mux.Handle("POST /reset-password",
		httpx.Chain(reset,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	preview := &RecoverPasswordHTMLContentHandler{
		UserService:  r.UserService,
		ResetService: r.ResetService,
	}
	r.Mux.Handle("POST /password-recovery-html-content/{email}",
		httpx.Chain(preview,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
