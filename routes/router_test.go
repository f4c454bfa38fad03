package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"undangan.digital/configs"
	"undangan.digital/configs/configsdatabase"
	"undangan.digital/configs/configslog"
	"undangan.digital/database"
	"undangan.digital/models"
	"undangan.digital/pkg/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "routes-test-secret"

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// nullStore satisfies the blob interface without touching the disk.
type nullStore struct{}

func (nullStore) Put(storedName string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "http://test/media/" + storedName, nil
}

func (nullStore) Remove(string) error { return nil }

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrationsInOrder(db))
	configsdatabase.SetDB(db)

	app := fiber.New()
	SetupRoutes(app, configs.App{JWTSecret: testSecret}, nullStore{})
	return app, db
}

func request(t *testing.T, app *fiber.App, method, path, bearer string, body any) (int, respond.Envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope respond.Envelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, "POST", "/no/such/route", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "resource not found", envelope.Error)
}

func TestClientRoutesRequireAuth(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, path := range []string{"/client/profile", "/client/events", "/client/media"} {
		status, envelope := request(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
		assert.False(t, envelope.Success, path)
	}
}

func TestRegisterLoginAndEventFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	status, envelope := request(t, app, "POST", "/auth/register", "", fiber.Map{
		"username": "andi",
		"password": "rahasia-besar",
		"name":     "Andi & Sari",
		"slug":     "andi-sari",
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.True(t, envelope.Success)

	status, envelope = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"username": "andi",
		"password": "rahasia-besar",
	})
	require.Equal(t, fiber.StatusOK, status)
	loginData, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	bearer, _ := loginData["token"].(string)
	require.NotEmpty(t, bearer)

	status, envelope = request(t, app, "POST", "/client/events", bearer, fiber.Map{
		"name":          "Resepsi",
		"use_guestbook": true,
		"allow_walkin":  true,
	})
	require.Equal(t, fiber.StatusCreated, status)
	eventData, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	eventID := int(eventData["id"].(float64))
	require.NotZero(t, eventID)

	// a second account cannot see the event
	status, _ = request(t, app, "POST", "/auth/register", "", fiber.Map{
		"username": "other",
		"password": "rahasia-besar",
		"name":     "Other",
		"slug":     "other",
	})
	require.Equal(t, fiber.StatusCreated, status)
	status, envelope = request(t, app, "POST", "/auth/login", "", fiber.Map{
		"username": "other",
		"password": "rahasia-besar",
	})
	require.Equal(t, fiber.StatusOK, status)
	otherData, _ := envelope.Data.(map[string]any)
	otherBearer, _ := otherData["token"].(string)

	status, envelope = request(t, app, "GET", fmt.Sprintf("/client/events/%d", eventID), otherBearer, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, envelope.Success)

	status, _ = request(t, app, "GET", fmt.Sprintf("/client/events/%d", eventID), bearer, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestPublicWalkinAndInvitation(t *testing.T) {
	app, db := setupTestApp(t)

	client := &models.Client{
		Username:     "owner",
		PasswordHash: "irrelevant",
		Name:         "Owner",
		Slug:         "owner",
		IsActive:     true,
	}
	require.NoError(t, db.Create(client).Error)
	event := &models.Event{
		ClientID:     client.ID,
		Name:         "Reception",
		UseGuestbook: true,
		AllowWalkin:  true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(event).Error)
	registration := &models.Registration{
		ClientID:  client.ID,
		Slug:      "owner",
		GroomName: "Raka",
		IsActive:  true,
	}
	require.NoError(t, db.Create(registration).Error)

	status, envelope := request(t, app, "POST", fmt.Sprintf("/events/%d/walkin", event.ID), "", fiber.Map{
		"name": "Passerby",
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, envelope.Success)

	status, _ = request(t, app, "POST", "/events/9999/walkin", "", fiber.Map{"name": "Lost"})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, envelope = request(t, app, "GET", "/owner", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)

	status, envelope = request(t, app, "GET", "/nobody-here", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, envelope.Success)
}
