package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderArgsTrailingLocal(t *testing.T) {
	assert.Equal(t,
		[]string{"deck-deploy", "--local", "a.html"},
		reorderArgs([]string{"deck-deploy", "a.html", "--local"}))
}

func TestReorderArgsTrailingShortFlags(t *testing.T) {
	assert.Equal(t,
		[]string{"deck-deploy", "-l", "-w", "a.html"},
		reorderArgs([]string{"deck-deploy", "a.html", "-l", "-w"}))
}

func TestReorderArgsValueFlagKeepsValue(t *testing.T) {
	assert.Equal(t,
		[]string{"deck-deploy", "--source", "out", "a.html"},
		reorderArgs([]string{"deck-deploy", "a.html", "--source", "out"}))
	assert.Equal(t,
		[]string{"deck-deploy", "--config=deploy.yaml", "a.html"},
		reorderArgs([]string{"deck-deploy", "a.html", "--config=deploy.yaml"}))
}

func TestReorderArgsFlagsFirstUnchanged(t *testing.T) {
	args := []string{"deck-deploy", "--local", "a.html"}
	assert.Equal(t, args, reorderArgs(args))
}
