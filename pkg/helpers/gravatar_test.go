package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5 of the normalized email, fixed size/rating/default image
	got := GravatarURL("test@example.com")
	assert.Equal(t, "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?d=mm&r=pg&s=200", got)
}

func TestGravatarURL_NormalizesEmail(t *testing.T) {
	assert.Equal(t, GravatarURL("test@example.com"), GravatarURL("  Test@Example.COM  "))
}
