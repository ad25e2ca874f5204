package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefAndDeref(t *testing.T) {
	p := Ref("x")
	assert.Equal(t, "x", Deref(p))

	var nilInt *int
	assert.Zero(t, Deref(nilInt))
}
