package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/account"
)

type accountApi struct {
	service *account.Service
}

func registerAccountAPI(g *echo.Group, svc *account.Service) {
	api := accountApi{service: svc}

	ag := g.Group("/accounts")
	ag.POST("/register", api.accountRegister)
	ag.POST("/login", api.accountLogin)
	ag.POST("/logout", api.accountLogout)
	ag.GET("/session", api.accountSession)
}

// Handlers

func (api *accountApi) accountRegister(ctx echo.Context) error {
	data := new(account.NewAccount)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	acct, err := api.service.Register(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, newAccountResponse(acct))
}

func (api *accountApi) accountLogin(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	acct, err := api.service.Authenticate(data.Username, data.Password)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newAccountResponse(acct))
}

func (api *accountApi) accountLogout(ctx echo.Context) error {
	if err := api.service.Logout(); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *accountApi) accountSession(ctx echo.Context) error {
	acct, err := api.service.Restore()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newAccountResponse(acct))
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// AccountResponse is the password-less view of a credential record.
	AccountResponse struct {
		Username         string   `json:"username"`
		Role             string   `json:"role"`
		DisplayName      string   `json:"displayName"`
		GradeLevel       string   `json:"gradeLevel,omitempty"`
		StudentID        string   `json:"studentId,omitempty"`
		ChildrenIDs      []string `json:"childrenIds,omitempty"`
		TeacherCourseIDs []string `json:"teacherCourseIds,omitempty"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username)
	return core.Validate.Struct(lr)
}

func newAccountResponse(acct account.Account) AccountResponse {
	return AccountResponse{
		Username:         acct.Username,
		Role:             acct.Role,
		DisplayName:      acct.DisplayName,
		GradeLevel:       acct.GradeLevel,
		StudentID:        acct.StudentID,
		ChildrenIDs:      acct.ChildrenIDs,
		TeacherCourseIDs: acct.TeacherCourseIDs,
	}
}
