package handler

import (
	"fmt"
	"net/http"

	"go-fintrack/common"
	"go-fintrack/config"
	"go-fintrack/model"
	"go-fintrack/service"
)

// UserHandler serves the register, login and logout pages.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func sessionMaxAge() int {
	return config.AppConfig.Session.TTLHours * 3600
}

// RegisterPage renders the empty account creation form.
func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) *common.AppError {
	render(w, http.StatusOK, "register", templateData{
		Title: "Register",
		Form:  model.RegisterForm{},
	})
	return nil
}

// Register validates the submission, creates the account, and establishes a
// session before redirecting to the dashboard.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form submission", err)
	}

	form := model.RegisterForm{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
	}

	if fieldErrors := common.ValidateForm(form); !fieldErrors.Empty() {
		render(w, http.StatusUnprocessableEntity, "register", templateData{
			Title:  "Register",
			Form:   form,
			Errors: fieldErrors,
		})
		return nil
	}

	user, fieldErrors, err := h.userService.Register(form)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
	}
	if !fieldErrors.Empty() {
		render(w, http.StatusUnprocessableEntity, "register", templateData{
			Title:  "Register",
			Form:   form,
			Errors: fieldErrors,
		})
		return nil
	}

	token, _, err := service.IssueSession(user)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not establish session", err)
	}
	setSessionCookie(w, token, sessionMaxAge())
	setFlash(w, "Account created successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

// LoginPage renders the empty login form.
func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) *common.AppError {
	render(w, http.StatusOK, "login", templateData{
		Title: "Login",
		Flash: popFlash(w, r),
		Form:  model.LoginForm{},
	})
	return nil
}

// Login checks credentials and establishes a session. Failures re-render the
// form with a deliberately generic message: whether the username exists must
// not be observable.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form submission", err)
	}

	form := model.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	failLogin := func() {
		render(w, http.StatusUnauthorized, "login", templateData{
			Title: "Login",
			Error: "Invalid username or password.",
			Form:  form,
		})
	}

	if fieldErrors := common.ValidateForm(form); !fieldErrors.Empty() {
		failLogin()
		return nil
	}

	user, err := h.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			failLogin()
			return nil
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not log in", err)
	}

	token, _, err := service.IssueSession(user)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not establish session", err)
	}
	setSessionCookie(w, token, sessionMaxAge())
	setFlash(w, fmt.Sprintf("Welcome back, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

// Logout terminates the session and redirects to the login page.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	clearSessionCookie(w)
	setFlash(w, "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return nil
}
