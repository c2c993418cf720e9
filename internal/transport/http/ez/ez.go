// Package ez registers typed endpoint actions: bind I, run the handler, map
// the error taxonomy onto HTTP statuses, marshal O. Every route in the
// service goes through Register, so authentication, role gating, optional
// transactions and boundary logging happen in exactly one place.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
	"go-jobboard/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param / c.Query itself
)

type EZ struct {
	g   *gin.RouterGroup
	db  *gorm.DB
	log *zap.Logger
}

func New(g *gin.RouterGroup, db *gorm.DB, log *zap.Logger) EZ {
	return EZ{g: g, db: db, log: log}
}

// Action describes one endpoint. I is the bound input, O the success body.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool          // require an authenticated actor
	Roles  []domain.Role // additionally require one of these roles
	UseTx  bool          // wrap the handler in a gorm transaction
	Status int           // success status; zero means 200

	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
}

// ActorFrom reads the identity the session middleware stored; a zero actor
// means the request is unauthenticated.
func ActorFrom(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetString("userId"),
		Role: domain.Role(c.GetString("userRole")),
	}
}

func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		actor := ActorFrom(c)
		if a.Auth && !actor.Authenticated() {
			c.JSON(http.StatusUnauthorized, response.Err("authentication required"))
			return
		}
		if len(a.Roles) > 0 {
			ok := false
			for _, r := range a.Roles {
				if actor.Role == r {
					ok = true
					break
				}
			}
			if !ok {
				if !actor.Authenticated() {
					c.JSON(http.StatusUnauthorized, response.Err("authentication required"))
					return
				}
				c.JSON(http.StatusForbidden, response.Err("forbidden"))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, response.Err(bindErr.Error()))
			return
		}

		var out O
		var err error
		if a.UseTx {
			err = e.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
				o, e2 := a.Handler(c, tx, &in)
				out = o
				return e2
			})
		} else {
			out, err = a.Handler(c, e.db.WithContext(c.Request.Context()), &in)
		}

		if err != nil {
			e.writeError(c, err)
			return
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// writeError maps the taxonomy to a status and logs anything server-side.
// Internal causes never reach the client body.
func (e EZ) writeError(c *gin.Context, err error) {
	var ae *apperr.E
	if errors.As(err, &ae) {
		if ae.Code >= http.StatusInternalServerError && e.log != nil {
			e.log.Error("handler error",
				zap.String("path", c.FullPath()),
				zap.String("method", c.Request.Method),
				zap.String("msg", ae.Msg),
				zap.Error(ae.Err),
			)
		}
		c.JSON(ae.Code, response.Err(ae.Error()))
		return
	}
	if e.log != nil {
		e.log.Error("handler error",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusInternalServerError, response.Err("internal server error"))
}
