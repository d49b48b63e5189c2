package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"forestguard/internal/auth"
	"forestguard/internal/domain"
	"forestguard/internal/news"
	"forestguard/internal/observability"
	"forestguard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	predictor service.PredictionService
	feed      news.Source
	sessions  *auth.Sessions
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	predictor service.PredictionService,
	feed news.Source,
	sessions *auth.Sessions,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:     users,
		predictor: predictor,
		feed:      feed,
		sessions:  sessions,
		metrics:   metrics,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.index)
	router.GET("/news", h.newsPage)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.GET("/signup", h.signupPage)
	router.POST("/signup", h.signup)
	router.GET("/logout", h.logout)

	protected := router.Group("/", h.requireAuth())
	{
		protected.GET("/d1", h.dashboard)
		protected.POST("/predict", h.predict)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// render merges the pending flash message into the template data, unless the
// handler already supplied one for the current request.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		kind, message := popFlash(c)
		if message != "" {
			data["Flash"] = message
			data["FlashKind"] = kind
		}
	}
	c.HTML(status, name, data)
}

func (h *Handler) index(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", nil)
}

// newsPage serves the filtered wildfire article feed. Upstream failures
// degrade to an empty page, never an error page.
func (h *Handler) newsPage(c *gin.Context) {
	articles, err := h.feed.Fetch(c.Request.Context())
	if err != nil {
		h.logger.Warnf("fetch news feed: %v", err)
		articles = nil
	}
	filtered := domain.WildfireFilter().Apply(articles)
	h.render(c, http.StatusOK, "news.html", gin.H{"Articles": filtered})
}

func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		h.countLogin("failure")
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Errorf("authenticate %q: %v", username, err)
		}
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Flash":     "Invalid username or password",
			"FlashKind": "error",
		})
		return
	}

	token, err := h.sessions.Issue(user.Username)
	if err != nil {
		h.countLogin("failure")
		h.logger.Errorf("issue session for %q: %v", user.Username, err)
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Flash":     "Login failed, please try again",
			"FlashKind": "error",
		})
		return
	}

	h.countLogin("success")
	c.SetCookie(sessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	setFlash(c, "success", "Login successful!")
	c.Redirect(http.StatusSeeOther, "/d1")
}

func (h *Handler) signupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", nil)
}

func (h *Handler) signup(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if _, err := h.users.Register(c.Request.Context(), username, email, password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			h.countSignup("duplicate")
			h.render(c, http.StatusOK, "signup.html", gin.H{
				"Flash":     "Username already exists",
				"FlashKind": "error",
			})
		default:
			h.countSignup("error")
			h.render(c, http.StatusOK, "signup.html", gin.H{
				"Flash":     err.Error(),
				"FlashKind": "error",
			})
		}
		return
	}

	h.countSignup("success")
	setFlash(c, "success", "Account created successfully! Please login.")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, "d1.html", gin.H{
		"Username": c.GetString(usernameKey),
	})
}

// predict runs the prediction pipeline for the submitted form. Every failure
// becomes a flash message and a redirect back to the dashboard; nothing
// raises past this boundary.
func (h *Handler) predict(c *gin.Context) {
	username := c.GetString(usernameKey)

	measurement, err := domain.ParseMeasurement(
		c.PostForm("temperature"),
		c.PostForm("rain"),
		c.PostForm("ffmc"),
		c.PostForm("dmc"),
		c.PostForm("isi"),
	)
	if err != nil {
		setFlash(c, "error", "Error: "+err.Error())
		c.Redirect(http.StatusSeeOther, "/d1")
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), username, measurement)
	if err != nil {
		h.logger.Errorf("predict for %q: %v", username, err)
		setFlash(c, "error", "Error: prediction failed, please try again")
		c.Redirect(http.StatusSeeOther, "/d1")
		return
	}

	h.render(c, http.StatusOK, "d1.html", gin.H{
		"Username":   username,
		"Prediction": result.Message(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}

func (h *Handler) countSignup(outcome string) {
	if h.metrics != nil {
		h.metrics.Signups.WithLabelValues(outcome).Inc()
	}
}
