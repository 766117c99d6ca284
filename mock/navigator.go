package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of docsearch.Navigator.
type Navigator struct {
	NavigateFn func(url string) error
}

func (n *Navigator) Navigate(url string) error {
	return n.NavigateFn(url)
}
