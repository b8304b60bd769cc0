package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFallbackChain(t *testing.T) {
	assert.Equal(t, "flag", resolve("flag", "config", "default"))
	assert.Equal(t, "config", resolve("", "config", "default"))
	assert.Equal(t, "default", resolve("", "", "default"))
}

func TestResolveList(t *testing.T) {
	assert.Equal(t, []string{"a"}, resolveList([]string{"a"}, []string{"b"}, []string{"c"}))
	assert.Equal(t, []string{"b"}, resolveList(nil, []string{"b"}, []string{"c"}))
	assert.Equal(t, []string{"c"}, resolveList(nil, nil, []string{"c"}))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b , "))
}
