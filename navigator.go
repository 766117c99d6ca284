package docsearch

// Navigator moves the user to a result location. The url is a site path
// and may carry a #fragment.
type Navigator interface {
	Navigate(url string) error
}
