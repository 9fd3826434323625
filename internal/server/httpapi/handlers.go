package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophprofile/internal/server/users"
	"github.com/gin-gonic/gin"
)

type userJSON struct {
	ID            string `json:"_id"`
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	IsAdmin       bool   `json:"isAdmin"`
}

func toUserJSON(u *users.User) *userJSON {
	return &userJSON{
		ID:            u.ID,
		FirstName:     u.FirstName,
		MiddleName:    u.MiddleName,
		LastName:      u.LastName,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		IsAdmin:       u.IsAdmin,
	}
}

type response struct {
	Code    string    `json:"code"`
	Message string    `json:"message,omitempty"`
	User    *userJSON `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}

type profileRequest struct {
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

func (r profileRequest) profile() users.Profile {
	return users.Profile{
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		Email:         r.Email,
		ContactNumber: r.ContactNumber,
		Password:      r.Password,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, response{Code: CodeInvalidInput, Message: "Malformed request body."})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.profile())
	if err != nil {
		s.writeError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, response{
		Code:    CodeUserRegistered,
		Message: "Registration successful.",
		User:    toUserJSON(u),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	token, u, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, response{
		Code:    CodeUserLoggedIn,
		Message: "Login successful.",
		User:    toUserJSON(u),
		Token:   token,
	})
}

func (s *Server) handleDetails(c *gin.Context) {
	u, err := s.users.Get(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		s.writeError(c, "details", err)
		return
	}

	c.JSON(http.StatusOK, response{Code: CodeUserFound, User: toUserJSON(u)})
}

func (s *Server) handleEdit(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	u, err := s.users.Update(c.Request.Context(), c.GetString(userIDKey), req.profile())
	if err != nil {
		s.writeError(c, "edit", err)
		return
	}

	c.JSON(http.StatusOK, response{
		Code:    CodeUserUpdated,
		Message: "Profile updated successfully",
		User:    toUserJSON(u),
	})
}
