package osa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand_SubstitutesKnownKeys(t *testing.T) {
	script := `tell application "Notes" to make new note with properties {name:"${NAME}"}`
	out := Expand(script, map[string]string{"NAME": "groceries"})
	assert.Equal(t, `tell application "Notes" to make new note with properties {name:"groceries"}`, out)
}

func TestExpand_EscapesQuotesAndBackslashes(t *testing.T) {
	out := Expand(`{name:"${NAME}"}`, map[string]string{"NAME": `say "hi" \now`})
	assert.Equal(t, `{name:"say \"hi\" \\now"}`, out)
}

func TestExpand_UnknownKeysLeftIntact(t *testing.T) {
	script := `${KNOWN} and ${UNKNOWN}`
	out := Expand(script, map[string]string{"KNOWN": "yes"})
	assert.Equal(t, "yes and ${UNKNOWN}", out)
}

func TestExpand_SinglePassNoReexpansion(t *testing.T) {
	// A value containing placeholder syntax must not be expanded again.
	out := Expand("${A}", map[string]string{"A": "${B}", "B": "evil"})
	assert.Equal(t, "${B}", out)
}

func TestExpand_NoPlaceholders(t *testing.T) {
	script := "tell application \"Finder\" to activate"
	assert.Equal(t, script, Expand(script, map[string]string{"X": "y"}))
	assert.Equal(t, script, Expand(script, nil))
}

func TestEscapeString_BackslashBeforeQuote(t *testing.T) {
	assert.Equal(t, `\\\"`, EscapeString(`\"`))
	assert.Equal(t, "plain", EscapeString("plain"))
}
