package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/smartentrance/backend/internal/adapters/handler/http"
	repository "github.com/smartentrance/backend/internal/adapters/repository/postgres"
	"github.com/smartentrance/backend/internal/core/ports"
	"github.com/smartentrance/backend/internal/core/services"
)

const (
	testJWTSecret      = "test-secret"
	testRememberWindow = time.Hour
)

type testApp struct {
	Container      testcontainers.Container
	DB             *sql.DB
	Server         *httptest.Server
	Client         *http.Client
	RevocationRepo ports.RevocationRepository
	Revoker        ports.TokenRevoker
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, applyMigrations(db))

	server, revocationRepo, revoker := newAppServer(t, db)

	return &testApp{
		Container:      container,
		DB:             db,
		Server:         server,
		Client:         server.Client(),
		RevocationRepo: revocationRepo,
		Revoker:        revoker,
	}
}

// newAppServer wires the application exactly as cmd/server does, on top
// of an already migrated database. Tests that simulate a restart call it
// a second time against the same database.
func newAppServer(t *testing.T, db *sql.DB) (*httptest.Server, ports.RevocationRepository, ports.TokenRevoker) {
	t.Helper()

	buildingRepo := repository.NewBuildingRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	userRepo := repository.NewUserRepository(db)
	pollRepo := repository.NewPollRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	revocationRepo := repository.NewRevocationRepository(db)

	revoker := services.NewRevocationService(revocationRepo, testRememberWindow)
	snapshot, err := revocationRepo.LoadAll(context.Background())
	require.NoError(t, err)
	revoker.LoadRevocations(snapshot)

	access := services.NewAccessControl(buildingRepo, unitRepo, pollRepo)
	pollService := services.NewPollService(pollRepo, voteRepo)
	voteService := services.NewVoteService(pollRepo, unitRepo, voteRepo, pollService, access)
	authService := services.NewAuthService(userRepo, revoker, []byte(testJWTSecret), testRememberWindow)

	authHandler := handler.NewAuthHandler(authService)
	pollHandler := handler.NewPollHandler(pollService, access)
	voteHandler := handler.NewVoteHandler(voteService)

	mux := handler.NewHandler(authHandler, pollHandler, voteHandler, []byte(testJWTSecret), revoker)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, revocationRepo, revoker
}

func (app *testApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	require.NoError(t, app.DB.Close())
	require.NoError(t, app.Container.Terminate(context.Background()))
}

func createUser(t *testing.T, db *sql.DB, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	_, err := db.Exec(
		"INSERT INTO users (id, email, name, role, password_hash) VALUES ($1, $2, $3, $4, $5)",
		userID, email, "User "+userID.String()[:8], role, "x",
	)
	require.NoError(t, err)
	return userID
}

func createBuilding(t *testing.T, db *sql.DB, managerID uuid.UUID) uuid.UUID {
	t.Helper()

	buildingID := uuid.New()
	_, err := db.Exec(
		"INSERT INTO buildings (id, name, address, manager_id) VALUES ($1, $2, $3, $4)",
		buildingID, "Building "+buildingID.String()[:8], "1 Test St", managerID,
	)
	require.NoError(t, err)
	return buildingID
}

func createUnit(t *testing.T, db *sql.DB, buildingID uuid.UUID, unitNumber int, responsibleUserID *uuid.UUID) uuid.UUID {
	t.Helper()

	unitID := uuid.New()
	_, err := db.Exec(
		"INSERT INTO units (id, building_id, unit_number, responsible_user_id) VALUES ($1, $2, $3, $4)",
		unitID, buildingID, unitNumber, responsibleUserID,
	)
	require.NoError(t, err)
	return unitID
}

// do issues an authenticated JSON request against the running server.
// Pass an empty token to send the request anonymously.
func (app *testApp) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func tokenFor(t *testing.T, userID uuid.UUID, issuedAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": issuedAt.Add(time.Hour).Unix(),
		"iat": issuedAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}
