package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/questionnaire/internal/client/models"
	"github.com/dmitrijs2005/questionnaire/internal/client/router"
)

// Layout is the parent of the questionnaire pages.
func Layout(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			who := "guest"
			if u := d.Session.User(); u != nil {
				who = displayName(u)
			}
			fmt.Fprintf(w, "== Questionnaires == [%s]\n", who)
			fmt.Fprintln(w, "   create | public | my  (go /questionnaire/<page>)")
			return nil
		}), nil
	}
}

// Editor serves both create and edit; edit has an id parameter.
func Editor(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			raw := m.Param("id")
			if raw == "" {
				fmt.Fprintln(w, "-- New questionnaire --")
				return nil
			}
			q, err := fetch(ctx, d, raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "-- Editing #%d: %s --\n", q.ID, q.Title)
			if q.Description != "" {
				fmt.Fprintln(w, q.Description)
			}
			return nil
		}), nil
	}
}

func PublicList(d Deps) router.Factory {
	return list("Public questionnaires", func(ctx context.Context) ([]models.Questionnaire, error) {
		return d.API.PublicQuestionnaires(ctx)
	})
}

func MyList(d Deps) router.Factory {
	return list("My questionnaires", func(ctx context.Context) ([]models.Questionnaire, error) {
		return d.API.MyQuestionnaires(ctx)
	})
}

func list(title string, load func(ctx context.Context) ([]models.Questionnaire, error)) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			items, err := load(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "-- %s (%d) --\n", title, len(items))
			for _, q := range items {
				fmt.Fprintf(w, "  #%-6d %s\n", q.ID, q.Title)
			}
			return nil
		}), nil
	}
}

// Results shows the response count of one questionnaire.
func Results(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			q, err := fetch(ctx, d, m.Param("id"))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "-- Results #%d: %s --\n", q.ID, q.Title)
			fmt.Fprintf(w, "  responses: %d\n", q.Responses)
			return nil
		}), nil
	}
}

// Fill introduces a questionnaire to a respondent.
func Fill(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			q, err := fetch(ctx, d, m.Param("id"))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "-- %s --\n", q.Title)
			if q.Description != "" {
				fmt.Fprintln(w, q.Description)
			}
			return nil
		}), nil
	}
}

func fetch(ctx context.Context, d Deps, raw string) (*models.Questionnaire, error) {
	id, err := questionnaireID(raw)
	if err != nil {
		return nil, err
	}
	return d.API.Questionnaire(ctx, id)
}
