package pages

//go:generate mockgen -source=$GOFILE -destination=navigator_mocks_test.go -package=pages_test

// Navigator replaces the current page, the same way assigning window.location does.
type Navigator interface {
	Navigate(path string)
}
