package handlers

import (
	"errors"
	"fmt"
	"log"

	"healthcheck/internal/middleware"
	"healthcheck/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// AuthHandler handles the public pages and the register/login/logout flow.
type AuthHandler struct {
	authService *services.AuthService
	store       *session.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	router.Get("/login", h.HandleLoginPage)
	router.Post("/login", h.HandleLogin)
	router.Get("/register", h.HandleRegisterPage)
	router.Post("/register", h.HandleRegister)
	router.Get("/logout", h.HandleLogout)
}

// HandleIndex renders the landing page.
func (h *AuthHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

// HandleLoginPage renders the login form.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// HandleRegisterPage renders the registration form.
func (h *AuthHandler) HandleRegisterPage(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{})
}

// LoginForm represents the URL-encoded login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// HandleLogin authenticates the submitted credentials and establishes
// a session. Failures re-render the form with a generic message so the
// response never reveals whether the email exists.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Render("login", fiber.Map{
			"Errors": []string{"Invalid form submission"},
		})
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("login", fiber.Map{
			"Errors": validationMessages(err),
			"Email":  form.Email,
		})
	}

	user, err := h.authService.Login(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("Login failed for %s: %v", form.Email, err)
		}
		return c.Render("login", fiber.Map{
			"Errors": []string{"Invalid email or password"},
			"Email":  form.Email,
		})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to open session: %v", err)
		return c.Render("login", fiber.Map{
			"Errors": []string{"Something went wrong, please try again"},
			"Email":  form.Email,
		})
	}
	sess.Set(middleware.SessionKeyUserID, user.ID)
	sess.Set(middleware.SessionKeyUserName, user.Name)
	if err := sess.Save(); err != nil {
		log.Printf("Failed to save session for user %s: %v", user.ID, err)
		return c.Render("login", fiber.Map{
			"Errors": []string{"Something went wrong, please try again"},
			"Email":  form.Email,
		})
	}

	return c.Redirect("/index", fiber.StatusFound)
}

// RegisterForm represents the URL-encoded registration form.
type RegisterForm struct {
	Name            string `form:"name" validate:"required,min=2,max=255"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// HandleRegister creates a new account and redirects to the login page.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Render("register", fiber.Map{
			"Errors": []string{"Invalid form submission"},
		})
	}

	if err := h.validate.Struct(form); err != nil {
		return c.Render("register", fiber.Map{
			"Errors": validationMessages(err),
			"Name":   form.Name,
			"Email":  form.Email,
		})
	}

	if _, err := h.authService.Register(form.Name, form.Email, form.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Render("register", fiber.Map{
				"Errors": []string{"This email is already registered"},
				"Name":   form.Name,
				"Email":  form.Email,
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Render("register", fiber.Map{
			"Errors": []string{"Could not create the account, please try again"},
			"Name":   form.Name,
			"Email":  form.Email,
		})
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// HandleLogout destroys the session and redirects to the landing page.
// A failed destroy is logged but never blocks the redirect.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		log.Printf("Failed to load session on logout: %v", err)
	} else if err := sess.Destroy(); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// validationMessages flattens validator errors into display strings.
func validationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid form submission"}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
	}
	return messages
}
