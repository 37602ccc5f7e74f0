package caseconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"http", "Server", "URL", "Path"}, Words("httpServerURLPath"))
	assert.Equal(t, []string{"foo", "bar", "baz"}, Words("foo_bar-baz"))
}

func TestSnakeKebabScreaming(t *testing.T) {
	assert.Equal(t, "http_server_url", Snake("HTTPServerURL"))
	assert.Equal(t, "http-server-url", Kebab("HTTPServerURL"))
	assert.Equal(t, "HTTP_SERVER_URL", ScreamingSnake("HTTPServerURL"))
}

func TestTitleCamelSentence(t *testing.T) {
	assert.Equal(t, "FooBarBaz", Title("foo_bar_baz"))
	assert.Equal(t, "fooBarBaz", Camel("foo_bar_baz"))
	assert.Equal(t, "Foo bar baz", Sentence("foo_bar_baz"))
}
