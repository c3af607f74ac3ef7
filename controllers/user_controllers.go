package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/middlewares"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

type UserController struct {
	Terminal Terminal
}

func NewUserController(t Terminal) *UserController {
	return &UserController{Terminal: t}
}

// Login signs a user in at the terminal and returns a session token. Any
// previous session on the terminal ends.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	snap, _, err := uc.Terminal.Dispatch(engine.Authenticate{Username: input.Username, Password: input.Password})
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	if snap.CurrentUser == nil || snap.CurrentUser.Username != input.Username {
		utils.InfoLogger.Warnf("Failed sign-in for %q from %s", input.Username, c.ClientIP())
		utils.RespondError(c, http.StatusUnauthorized, errors.New("ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"))
		return
	}

	user := *snap.CurrentUser
	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %s signed in (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":        token,
		"user":         user.Public(),
		"default_view": engine.DefaultView(user.Role),
	})
}

func (uc *UserController) Logout(c *gin.Context) {
	if _, ok := dispatch(c, uc.Terminal, engine.SignOut{}, "already signed out"); !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the signed-in user with what the role may see and do.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"user":         user.Public(),
		"default_view": engine.DefaultView(user.Role),
		"views":        engine.AllowedViews(user.Role),
		"intents":      engine.AllowedIntents(user.Role),
	})
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	users := uc.Terminal.Snapshot().Users
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	utils.RespondJSON(c, http.StatusOK, "All users", out)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var req engine.CreateUser
	if !bindJSON(c, &req) {
		return
	}
	snap, ok := dispatch(c, uc.Terminal, req, "username is empty or taken, or the role is unknown")
	if !ok {
		return
	}
	created := snap.Users[len(snap.Users)-1]
	utils.InfoLogger.Printf("New user created: %s (role=%s)", created.Username, created.Role)
	utils.RespondJSON(c, http.StatusCreated, "User created", created.Public())
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	if _, ok := dispatch(c, uc.Terminal, engine.DeleteUser{UserID: c.Param("user_id")},
		"user not found or is the last admin"); !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}
