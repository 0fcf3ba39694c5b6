package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFileArg(t *testing.T) {
	assert.Equal(t, ".env", envFileArg(nil, ".env"))
	assert.Equal(t, "prod.env", envFileArg([]string{"-n", "10", "-env", "prod.env"}, ".env"))
	assert.Equal(t, "x.env", envFileArg([]string{"--env=x.env"}, ".env"))
	assert.Equal(t, "y.env", envFileArg([]string{"-env=y.env", "-serve"}, ".env"))
	assert.Equal(t, ".env", envFileArg([]string{"-env"}, ".env"))
}

func TestWinnerLabel(t *testing.T) {
	assert.Equal(t, "healer", winnerLabel("A", "healer", "attacker"))
	assert.Equal(t, "attacker", winnerLabel("B", "healer", "attacker"))
	assert.Equal(t, "even", winnerLabel("even", "healer", "attacker"))
}
