package docsearch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsearch.Errorf(docsearch.ENOTFOUND, "index %q not found", "search-data.json")

	assert.Equal(t, docsearch.ENOTFOUND, docsearch.ErrorCode(err))
	assert.Equal(t, "index \"search-data.json\" not found", docsearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsearch.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("read index: %w", docsearch.Errorf(docsearch.EINVALID, "malformed index"))

	assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	assert.Equal(t, "malformed index", docsearch.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, docsearch.EINTERNAL, docsearch.ErrorCode(err))
	assert.Equal(t, "Internal error.", docsearch.ErrorMessage(err))
}
