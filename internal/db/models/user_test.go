package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTag(t *testing.T) {
	legacy := &User{Username: "alice", Discriminator: "1234"}
	assert.Equal(t, "alice#1234", legacy.Tag())

	migrated := &User{Username: "alice", Discriminator: "0"}
	assert.Equal(t, "alice", migrated.Tag())

	bare := &User{Username: "alice"}
	assert.Equal(t, "alice", bare.Tag())
}

func TestUserModerates(t *testing.T) {
	user := &User{ModeratedGames: []Game{{ID: "mkw"}, {ID: "mk8dx"}}}

	assert.True(t, user.Moderates("mkw"))
	assert.False(t, user.Moderates("smo"))

	none := &User{}
	assert.False(t, none.Moderates("mkw"))
}

func TestUserLinked(t *testing.T) {
	assert.False(t, (&User{ID: "userA"}).Linked())
	assert.True(t, (&User{ID: "userA", SrcID: "srcA"}).Linked())
}
