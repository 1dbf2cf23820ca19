package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"helios/internal/config"
	"helios/internal/database"
	"helios/internal/repository"
	"helios/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over a fresh in-memory database with routes
// registered on a bare Fiber app. Redis and the push channel stay nil; the
// REST surface must work without them.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)

	s := &Server{
		config:         &config.Config{Port: "0", Env: "test"},
		db:             db,
		userRepo:       userRepo,
		siteRepo:       siteRepo,
		investmentRepo: investmentRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.siteService = service.NewSiteService(siteRepo, nil)
	s.investmentService = service.NewInvestmentService(db, userRepo, investmentRepo, nil)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...map[string]string) (*http.Response, map[string]interface{}) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}
