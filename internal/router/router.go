package router

import (
	"strings"
)

type ControllerID string

const (
	LoginController      ControllerID = "login"
	RegisterController   ControllerID = "register"
	RecordFormController ControllerID = "record-form"
	DetailController     ControllerID = "detail"
	IndexController      ControllerID = "index"
)

// element ids a page may carry
const (
	LoginFormElement      = "loginForm"
	RegisterFormElement   = "registerForm"
	RecordFormElement     = "registerPR"
	PRSelectElement       = "prSelect"
	ActivitySelectElement = "prSelectActivity"
	ExerciseSelectElement = "exoSelect"
	RecordsTableElement   = "pr-table"
	ChartElement          = "prChart"
	MessageElement        = "message"
)

// data attributes of detail pages
const (
	PRTypeAttribute   = "pr-type"
	ExerciseAttribute = "exercise"
)

// Route decides which controllers apply to a page. It is evaluated once per page load.
// Controllers are not exclusive: a page may activate several of them.
// has reports whether the page carries an element with the given id.
func Route(pathname string, has func(id string) bool) []ControllerID {
	if has == nil {
		has = func(string) bool { return false }
	}

	var ids []ControllerID
	if pathname == LoginPage || has(LoginFormElement) {
		ids = append(ids, LoginController)
	}
	if pathname == RegisterPage || has(RegisterFormElement) {
		ids = append(ids, RegisterController)
	}
	if pathname == RecordFormPage || has(RecordFormElement) {
		ids = append(ids, RecordFormController)
	}

	// prefixes before the exact index routes they extend
	if isDetailPath(pathname) {
		ids = append(ids, DetailController)
	} else if pathname == IndexPage || pathname == LegacyIndexPage {
		ids = append(ids, IndexController)
	}

	return ids
}

func isDetailPath(pathname string) bool {
	for _, prefix := range []string{DetailPrefix, LegacyDetailPrefix} {
		if strings.HasPrefix(pathname, prefix) && strings.Trim(pathname[len(prefix):], "/") != "" {
			return true
		}
	}
	return false
}
