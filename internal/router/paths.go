package router

import (
	"net/url"
	"strings"
)

// pages
const (
	LoginPage          = "/login-page"
	RegisterPage       = "/register-page"
	RecordFormPage     = "/personal-record-form"
	RecordAddedPage    = "/personal-record-added"
	IndexPage          = "/personal-index"
	LegacyIndexPage    = "/personal-record-page"
	DetailPrefix       = "/personal-record/"
	LegacyDetailPrefix = "/personal-record-page/"
	ActivityPrefix     = "/strava/"
)

// API endpoints
const (
	LoginAPI         = "/login"
	RegisterAPI      = "/register"
	AddRecordAPI     = "/personal-record"
	PRTypesAPI       = "/pr-types"
	ActivitiesAPI    = "/activities"
	ExercisesAPI     = "/exo"
	RecordsAPIPrefix = "/get-personal-record/"
	LegacyRecordsAPI = "/personal-record/"
)

// DetailPath is the page showing the history of one (pr, exercise) pair.
// Without an exercise it falls back to the legacy single-key page.
func DetailPath(pr, exercise string) string {
	if exercise == "" {
		return LegacyDetailPrefix + url.PathEscape(pr)
	}
	return DetailPrefix + url.PathEscape(pr) + "/" + url.PathEscape(exercise)
}

func ActivityPath(activity string) string {
	return ActivityPrefix + url.PathEscape(activity)
}

// RecordsAPIPath is the history endpoint matching DetailPath.
func RecordsAPIPath(pr, exercise string) string {
	if exercise == "" {
		return LegacyRecordsAPI + url.PathEscape(pr)
	}
	return RecordsAPIPrefix + url.PathEscape(pr) + "/" + url.PathEscape(exercise)
}

// DetailKey extracts the path-unescaped segments following a detail prefix.
// The legacy page carries only the PR type, so its last segment is used.
func DetailKey(pathname string) (pr, exercise string, ok bool) {
	switch {
	case strings.HasPrefix(pathname, LegacyDetailPrefix):
		suffix := strings.Trim(strings.TrimPrefix(pathname, LegacyDetailPrefix), "/")
		segments := strings.Split(suffix, "/")
		pr, err := url.PathUnescape(segments[len(segments)-1])
		if err != nil || pr == "" {
			return "", "", false
		}
		return pr, "", true
	case strings.HasPrefix(pathname, DetailPrefix):
		suffix := strings.Trim(strings.TrimPrefix(pathname, DetailPrefix), "/")
		prPart, exercisePart, _ := strings.Cut(suffix, "/")
		pr, err := url.PathUnescape(prPart)
		if err != nil || pr == "" {
			return "", "", false
		}
		exercise, err := url.PathUnescape(exercisePart)
		if err != nil {
			return "", "", false
		}
		return pr, exercise, true
	default:
		return "", "", false
	}
}
