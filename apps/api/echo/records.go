package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core/account"
	"github.com/trezcool/shule/core/records"
)

type recordsApi struct {
	accounts *account.Service
	service  *records.Service
}

func registerRecordsAPI(g *echo.Group, accts *account.Service, svc *records.Service) {
	api := recordsApi{accounts: accts, service: svc}

	g.GET("/dashboard", api.dashboard)

	g.GET("/assignments", api.assignmentQuery)
	g.POST("/assignments", api.assignmentCreate)
	g.PUT("/assignments/:id", api.assignmentUpdate)

	g.GET("/grades", api.gradeQuery)
	g.POST("/grades", api.gradeCreate)
	g.PUT("/grades/:id", api.gradeUpdate)

	g.GET("/courses/allowed", api.allowedCourses)
}

// identity resolves the active session into a role-tagged identity.
func (api *recordsApi) identity() (records.Identity, error) {
	acct, err := api.accounts.Current()
	if err == account.ErrNoSession {
		acct, err = api.accounts.Restore()
	}
	if err != nil {
		return nil, err
	}
	return api.service.IdentityOf(acct)
}

// Handlers

func (api *recordsApi) dashboard(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.service.Dashboard(ident))
}

func (api *recordsApi) assignmentQuery(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.service.Assignments(ident))
}

func (api *recordsApi) assignmentCreate(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}

	data := new(records.NewAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	a, err := api.service.CreateAssignment(ident, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *recordsApi) assignmentUpdate(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}

	data := new(records.UpdateAssignment)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	a, err := api.service.UpdateAssignment(ident, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *recordsApi) gradeQuery(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.service.Grades(ident))
}

func (api *recordsApi) gradeCreate(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}

	data := new(records.NewGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	g, err := api.service.CreateGrade(ident, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *recordsApi) gradeUpdate(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}

	data := new(records.UpdateGrade)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	g, err := api.service.UpdateGrade(ident, ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

// allowedCourses returns the courses the acting teacher may select for the
// given student: taught and enrolled courses only.
func (api *recordsApi) allowedCourses(ctx echo.Context) error {
	ident, err := api.identity()
	if err != nil {
		return err
	}
	t, ok := ident.(records.TeacherIdentity)
	if !ok {
		return records.ErrNotTeacher
	}
	return ctx.JSON(http.StatusOK, api.service.AllowedCourses(t, ctx.QueryParam("student_id")))
}
