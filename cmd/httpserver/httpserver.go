// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/memstore"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/internal/storepgs"
	"github.com/go-petr/pet-ledger/internal/subaccountdelivery"
	"github.com/go-petr/pet-ledger/internal/subaccountservice"
	"github.com/go-petr/pet-ledger/internal/syntheticdelivery"
	"github.com/go-petr/pet-ledger/internal/syntheticservice"
	"github.com/go-petr/pet-ledger/internal/userdelivery"
	"github.com/go-petr/pet-ledger/internal/userrepo"
	"github.com/go-petr/pet-ledger/internal/userservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// DriverMemory selects the in-memory backend.
const DriverMemory = "memory"

// Backend holds the stores the server works on.
type Backend struct {
	Store domain.Store
	Users userservice.Repo
	// DB is nil for the in-memory backend.
	DB *sql.DB
}

// NewPGSBackend returns a backend on top of a PostgreSQL connection.
func NewPGSBackend(conn *sql.DB) Backend {
	return Backend{
		Store: storepgs.New(conn),
		Users: userrepo.NewRepoPGS(conn),
		DB:    conn,
	}
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() Backend {
	return Backend{
		Store: memstore.New(),
		Users: memstore.NewUserRepo(),
	}
}

// OpenBackend opens the backend selected by config.DBDriver.
func OpenBackend(config configpkg.Config) (Backend, error) {
	if config.DBDriver == DriverMemory {
		return NewMemoryBackend(), nil
	}

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		return Backend{}, fmt.Errorf("cannot connect to database: %w", err)
	}

	return NewPGSBackend(conn), nil
}

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(backend Backend, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("relations", web.ValidRelations)
		if err != nil {
			return nil, errors.New("cannot register relations validator")
		}
	}

	accountHandler := accountdelivery.NewHandler(accountservice.New(backend.Store))
	syntheticHandler := syntheticdelivery.NewHandler(syntheticservice.New(backend.Store))
	subAccountHandler := subaccountdelivery.NewHandler(subaccountservice.New(backend.Store))
	userHandler := userdelivery.NewHandler(userservice.New(backend.Users))

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	accounts := engine.Group("/accounts")
	accounts.GET("", accountHandler.List(projection.ViewDefault))
	accounts.GET("/single/:id", accountHandler.Get(projection.ViewDefault))
	accounts.GET("/with-synthetic", accountHandler.List(projection.ViewWithSynthetic))
	accounts.GET("/with-synthetic/single/:id", accountHandler.Get(projection.ViewWithSynthetic))
	accounts.GET("/query", accountHandler.Query)
	accounts.GET("/query/:id", accountHandler.QueryOne)
	accounts.POST("", accountHandler.Create)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.DELETE("/:id", accountHandler.Delete)

	synthetic := engine.Group("/synthetic-accounts")
	synthetic.GET("", syntheticHandler.List(projection.ViewDefault))
	synthetic.GET("/single/:id", syntheticHandler.Get(projection.ViewDefault))
	synthetic.GET("/with-linked", syntheticHandler.List(projection.ViewWithLinked))
	synthetic.GET("/with-linked/single/:id", syntheticHandler.Get(projection.ViewWithLinked))
	synthetic.GET("/with-sub", syntheticHandler.List(projection.ViewWithSub))
	synthetic.GET("/with-sub/single/:id", syntheticHandler.Get(projection.ViewWithSub))
	synthetic.GET("/with-sub-linked", syntheticHandler.List(projection.ViewWithSubAndLinked))
	synthetic.GET("/with-sub-linked/single/:id", syntheticHandler.Get(projection.ViewWithSubAndLinked))
	synthetic.GET("/query", syntheticHandler.Query)
	synthetic.GET("/query/:id", syntheticHandler.QueryOne)
	synthetic.POST("", syntheticHandler.Create)
	synthetic.PUT("/:id", syntheticHandler.Update)
	synthetic.DELETE("/:id", syntheticHandler.Delete)

	sub := engine.Group("/sub-accounts")
	sub.GET("", subAccountHandler.List)
	sub.GET("/single/:id", subAccountHandler.Get)
	sub.GET("/query", subAccountHandler.Query)
	sub.GET("/query/:id", subAccountHandler.QueryOne)
	sub.POST("", subAccountHandler.Create)
	sub.PUT("/:id", subAccountHandler.Update)
	sub.DELETE("/:id", subAccountHandler.Delete)

	engine.POST("/users", userHandler.Create)
	engine.GET("/users/:id", userHandler.Get)

	server := &Server{
		DB:     backend.DB,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
