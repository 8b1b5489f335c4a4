package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type resource uint

func (r resource) OwnerID() uint { return uint(r) }

func TestCanDelete(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		owner uint
		want  bool
	}{
		{"owner", Actor{ID: 7}, 7, true},
		{"stranger", Actor{ID: 8}, 7, false},
		{"admin", Actor{ID: 8, IsAdmin: true}, 7, true},
		{"anonymous", Actor{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDelete(tt.actor, resource(tt.owner)))
		})
	}
}

func TestCanModerate(t *testing.T) {
	assert.True(t, CanModerate(Actor{ID: 1, IsAdmin: true}))
	assert.False(t, CanModerate(Actor{ID: 1}))
}
