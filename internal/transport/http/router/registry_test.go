package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name     string
	priority int
	order    *[]string
}

func (m recorder) MountAPI(*gin.RouterGroup)   { *m.order = append(*m.order, "api:"+m.name) }
func (m recorder) MountAdmin(*gin.RouterGroup) { *m.order = append(*m.order, "admin:"+m.name) }
func (m recorder) Priority() int               { return m.priority }

type apiOnly struct{ order *[]string }

func (m apiOnly) MountAPI(*gin.RouterGroup) { *m.order = append(*m.order, "api:plain") }

func TestRegistry_MountsByPriority(t *testing.T) {
	var order []string
	reg := NewRegistry(
		recorder{name: "late", priority: 50, order: &order},
		apiOnly{order: &order},
		recorder{name: "early", priority: 1, order: &order},
	)
	g := gin.New().Group("")

	reg.MountAPI(g)
	reg.MountAdmin(g)

	assert.Equal(t, []string{
		"api:early", "api:late", "api:plain",
		"admin:early", "admin:late",
	}, order)
}
