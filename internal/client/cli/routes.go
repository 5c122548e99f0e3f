package cli

import (
	"github.com/dmitrijs2005/questionnaire/internal/client/router"
	"github.com/dmitrijs2005/questionnaire/internal/client/views"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// appRoutes is the client route table. The bare root always redirects to
// the questionnaire editor.
func appRoutes(d views.Deps) []router.Route {
	return []router.Route{
		{Path: "/", Redirect: "/questionnaire/create"},
		{
			Path: "/questionnaire",
			Name: "questionnaire",
			View: views.Layout(d),
			Children: []router.Route{
				{Path: "create", Name: "questionnaire-create", View: views.Editor(d)},
				{Path: "edit/:id", Name: "questionnaire-edit", View: views.Editor(d)},
				{Path: "public", Name: "questionnaire-public", View: views.PublicList(d)},
				{Path: "my", Name: "questionnaire-my", View: views.MyList(d)},
				{Path: "results/:id", Name: "questionnaire-results", View: views.Results(d)},
				{Path: "fill/:id", Name: "questionnaire-fill", View: views.Fill(d)},
			},
		},
		{Path: LoginPath, Name: "login", View: views.Login(d)},
		{Path: RegisterPath, Name: "register", View: views.Register(d)},
	}
}
