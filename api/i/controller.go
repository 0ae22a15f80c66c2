package i

import "github.com/gin-gonic/gin"

// Controller mounts its routes on the versioned API group. Routes added in
// RegisterProtected run behind the session bearer-token middleware.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
