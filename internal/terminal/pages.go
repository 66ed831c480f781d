package terminal

import (
	"strings"

	"github.com/2beens/prtracker/internal/router"
)

type Field struct {
	Name   string
	Label  string
	Secret bool
}

type form struct {
	id         string
	controller router.ControllerID
	fields     []Field
}

// page is the markup a path serves: which forms and elements exist on it.
type page struct {
	title    string
	forms    []form
	elements []string
	selects  []string
}

var (
	loginForm = form{
		id:         router.LoginFormElement,
		controller: router.LoginController,
		fields: []Field{
			{Name: "email", Label: "Email"},
			{Name: "password", Label: "Mot de passe", Secret: true},
		},
	}
	registerForm = form{
		id:         router.RegisterFormElement,
		controller: router.RegisterController,
		fields: []Field{
			{Name: "name", Label: "Nom"},
			{Name: "email", Label: "Email"},
			{Name: "password", Label: "Mot de passe", Secret: true},
		},
	}
	recordForm = form{
		id:         router.RecordFormElement,
		controller: router.RecordFormController,
		fields: []Field{
			{Name: "exo_id", Label: "Exercice (id)"},
			{Name: "pr", Label: "Type de PR"},
			{Name: "quantity", Label: "Quantité"},
			{Name: "time", Label: "Temps"},
			{Name: "date", Label: "Date"},
			{Name: "added_weight", Label: "Poids ajouté"},
			{Name: "weight", Label: "Poids"},
		},
	}
)

func lookupPage(path string) page {
	switch {
	case path == router.LoginPage:
		return page{
			title:    "Connexion",
			forms:    []form{loginForm},
			elements: []string{router.MessageElement},
		}
	case path == router.RegisterPage:
		return page{
			title:    "Inscription",
			forms:    []form{registerForm},
			elements: []string{router.MessageElement},
		}
	case path == router.RecordFormPage:
		return page{
			title:    "Nouveau PR",
			forms:    []form{recordForm},
			elements: []string{router.MessageElement},
			// the exercise picker comes before the form it feeds
			selects: []string{router.ExerciseSelectElement},
		}
	case path == router.RecordAddedPage:
		return page{title: "PR ajouté"}
	case path == router.IndexPage || path == router.LegacyIndexPage:
		return page{
			title:   "Mes PR",
			selects: []string{router.PRSelectElement, router.ActivitySelectElement},
		}
	case isDetail(path):
		return page{
			title:    "Historique",
			elements: []string{router.RecordsTableElement, router.ChartElement},
		}
	case strings.HasPrefix(path, router.ActivityPrefix):
		return page{title: "Activité"}
	default:
		return page{}
	}
}

func isDetail(path string) bool {
	_, _, ok := router.DetailKey(path)
	return ok
}

func (p page) has(id string) bool {
	for _, f := range p.forms {
		if f.id == id {
			return true
		}
	}
	for _, e := range p.elements {
		if e == id {
			return true
		}
	}
	for _, s := range p.selects {
		if s == id {
			return true
		}
	}
	return false
}
