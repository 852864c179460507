package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"userapi/internal/repository"
	"userapi/internal/service"
	"userapi/internal/testutil"
)

const seedJSON = `[
	{"name": "Samwel", "email": "samwel@gmail.com", "designation": "s.j.Fumbi"},
	{"name": "Samwel Again", "email": "samwel@gmail.com", "designation": "Tester"},
	{"name": "", "email": "blank@gmail.com", "designation": "Tester"}
]`

func TestLoadUsers_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	users, err := loadUsers(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "samwel@gmail.com", users[0].Email)
	assert.Empty(t, users[2].Name)
}

func TestLoadUsers_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(seedJSON))
	}))
	defer srv.Close()

	users, err := loadUsers(context.Background(), srv.URL+"/users.json")
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = loadUsers(context.Background(), srv.URL+"/missing.json")
	assert.Error(t, err)
}

func TestLoadUsers_Errors(t *testing.T) {
	_, err := loadUsers(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = loadUsers(context.Background(), path)
	assert.Error(t, err)
}

func TestSeedUsers(t *testing.T) {
	gormDB := testutil.NewDB(t)
	svc := service.NewUserService(repository.NewUserRepository(gormDB), nil, 0, zap.NewNop())
	ctx := context.Background()

	users := []service.UserInput{
		{Name: "Samwel", Email: "samwel@gmail.com", Designation: "s.j.Fumbi"},
		{Name: "Samwel Again", Email: "samwel@gmail.com", Designation: "Tester"},
		{Name: "", Email: "blank@gmail.com", Designation: "Tester"},
		{Name: "Husse", Email: "hussein@gmail.com", Designation: "s.j.Fumbi"},
	}

	res, err := seedUsers(ctx, svc, users)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Created: 2, Existing: 1, Skipped: 1}, res)

	// Running again creates nothing new.
	res, err = seedUsers(ctx, svc, users)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Created: 0, Existing: 3, Skipped: 1}, res)
}

func TestSeedUsers_StoreFailure(t *testing.T) {
	gormDB := testutil.NewDB(t)
	svc := service.NewUserService(repository.NewUserRepository(gormDB), nil, 0, zap.NewNop())
	testutil.CloseDB(t, gormDB)

	_, err := seedUsers(context.Background(), svc, sampleUsers)
	assert.Error(t, err)
}
