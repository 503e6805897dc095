package database

import (
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions_backend/internals/configs"
)

func TestBuildDSNEscapesCredentials(t *testing.T) {
	cfg := configs.DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "admissions@prod",
		Password: "p@ss:w/rd#1?",
		Name:     "admission_system",
		SSLMode:  "require",
	}
	dsn := BuildDSN(cfg)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "admissions@prod", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss:w/rd#1?", pw)
	assert.Equal(t, "/admission_system", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))

	pc, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "admissions@prod", pc.User)
	assert.Equal(t, "p@ss:w/rd#1?", pc.Password)
	assert.Equal(t, "admission_system", pc.Database)
	assert.EqualValues(t, 5433, pc.Port)
}
