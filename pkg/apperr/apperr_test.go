package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("cart not found")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", Conflict("dup"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk on fire")))
	assert.False(t, Is(nil, KindInternal))
	assert.True(t, Is(InvalidState("order is %s", "delivered"), KindInvalidState))
	assert.Equal(t, "order is delivered", InvalidState("order is %s", "delivered").Error())
}
