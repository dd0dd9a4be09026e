package gerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := NewErrAlreadyExists("member already exists")
	err = err.Wrap(fmt.Errorf("unique constraint failed"))
	require.Equal(t, "member already exists: unique constraint failed", err.Error())
	require.Equal(t, "member already exists", err.Message())

	err = err.EDetail("nickname", "ahachul")
	require.Equal(t, "member already exists [nickname=ahachul]: unique constraint failed", err.Error())
	require.Equal(t, "member already exists", err.Message())

	err = err.Wrap(NewErrNotFound("subway line does not exist").EDetail("id", 7).Wrap(fmt.Errorf("no rows")))
	require.Equal(t, "member already exists [nickname=ahachul]: subway line does not exist [id=7]: no rows", err.Error())
	require.Equal(t, "member already exists", err.Message())
}

func TestErrorDetailsAreOrdered(t *testing.T) {
	err := NewErrInvalidArgument("bad page").EDetail("page_size", 0).IDetail("cursor", "abc")
	require.Equal(t, "bad page [cursor=abc, page_size=0]", err.Error())
	require.Len(t, err.Details(), 2)
	require.Equal(t, AudienceInternal, err.Details()["cursor"].Audience())
}

func TestNewErrorKeepsInner(t *testing.T) {
	inner := errors.New("boom")
	err := NewError("outer", AudienceInternal, ErrCodeInternal, http.StatusInternalServerError, inner)
	require.True(t, errors.Is(err, inner))
}

func TestHasHTTPStatusCode(t *testing.T) {
	err := fmt.Errorf("error reading post: %w", NewErrPostNotFound())
	require.True(t, HasHTTPStatusCode(err, http.StatusNotFound))
	require.False(t, HasHTTPStatusCode(err, http.StatusBadRequest))
	require.True(t, IsPostNotFound(err))
	require.False(t, IsNotFound(err))
}

func TestMultiError(t *testing.T) {
	// Compose a multierror with our tested error in the middle
	var results *multierror.Error

	results = multierror.Append(results, fmt.Errorf("error 1: %w", errors.New("1")))
	results = multierror.Append(results, NewErrUnsupportedFileType("text/plain"))
	results = multierror.Append(results, fmt.Errorf("error 3: %w", errors.New("3")))

	err := results.ErrorOrNil()
	require.True(t, IsUnsupportedFileType(err))

	var outerResults *multierror.Error
	outerResults = multierror.Append(err, fmt.Errorf("outer error 1: %w", errors.New("11")))

	outerErr := outerResults.ErrorOrNil()
	require.True(t, IsUnsupportedFileType(outerErr))
}
