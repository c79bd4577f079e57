package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(NotFound("x")))
	assert.Equal(t, http.StatusBadRequest, Status(InvalidArgument("x")))
	assert.Equal(t, http.StatusConflict, Status(InsufficientStock("x")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("x")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("db broke")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("creating debt: %w", InsufficientStock("no stock"))
	assert.True(t, Is(err, KindInsufficientStock))
	assert.Equal(t, http.StatusConflict, Status(err))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("user with UUID %s not found", "abc")
	assert.Equal(t, "user with UUID abc not found", err.Error())
}
