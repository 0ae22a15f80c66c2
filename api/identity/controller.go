package identity

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/infrastruture/token"
	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/beka-birhanu/vinom-mazeviz/service"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/gin-gonic/gin"
)

// SessionStarter creates visualization sessions.
type SessionStarter interface {
	NewSession() (*service.Session, error)
}

// SessionGrant is returned when a session is opened. Token authorizes the
// protected routes of that session only.
type SessionGrant struct {
	ID    string           `json:"id"`
	Token string           `json:"token"`
	State service.Snapshot `json:"state"`
}

// IdentityServer opens sessions and hands out their bearer tokens.
type IdentityServer struct {
	sessions  SessionStarter
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
	logger    general_i.Logger
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(s SessionStarter, ts i.Tokenizer, tokenTTL time.Duration, logger general_i.Logger) *IdentityServer {
	return &IdentityServer{
		sessions:  s,
		tokenizer: ts,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/sessions", c.openSession)
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// openSession starts a session with a fresh maze and returns its token.
func (c *IdentityServer) openSession(ctx *gin.Context) {
	session, err := c.sessions.NewSession()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrTooManySessions) {
			status = http.StatusServiceUnavailable
		}
		c.logger.Error(fmt.Sprintf("opening session: %s", err))
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	tok, err := token.IssueSessionToken(c.tokenizer, session.ID(), c.tokenTTL)
	if err != nil {
		c.logger.Error(fmt.Sprintf("signing token for session %s: %s", session.ID(), err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session token"})
		return
	}

	ctx.JSON(http.StatusCreated, SessionGrant{
		ID:    session.ID().String(),
		Token: tok,
		State: session.Snapshot(),
	})
}
