package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"afisha/internal/domain"
)

type detailed struct{ msg string }

func (d detailed) Error() string  { return "backend: " + d.msg }
func (d detailed) Detail() string { return d.msg }

func TestCode(t *testing.T) {
	assert.Equal(t, "", domain.Code(nil))
	assert.Equal(t, "", domain.Code(errors.New("boom")))
	assert.Equal(t, "event_full", domain.Code(domain.ErrEventFull))
	assert.Equal(t, "order_failed", domain.Code(fmt.Errorf("confirm participation 3: %w", domain.ErrOrderFailed)))
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "", domain.Detail(domain.ErrOrderFailed))

	err := fmt.Errorf("wrap: %w", detailed{msg: "Нет мест"})
	assert.Equal(t, "Нет мест", domain.Detail(err))
}

func TestActionState_InFlight(t *testing.T) {
	assert.True(t, domain.StateConfirming.InFlight())
	assert.True(t, domain.StateCancelling.InFlight())
	assert.False(t, domain.StateIdle.InFlight())
	assert.False(t, domain.StateConfirmed.InFlight())
}
