package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

func TestLoadConfig(t *testing.T) {
	tempFile, err := os.CreateTemp("", "*.env")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tempFile.Name()) })

	configData := []byte(`
PORT=8080
HOST=127.0.0.1
ENVIRONMENT=production
VERSION=1.0.0
TRUSTED_ORIGINS="http://localhost:3000,http://localhost:3001"
JWT_SECRET=supersecret
AUTH_REQUIRED=true
POSTGRES_HOST=localhost
POSTGRES_USER=testuser
POSTGRES_PASSWORD=testpassword
POSTGRES_DB=testdb
MAIL_HOST=smtp.example.com
MAIL_PORT=2525
MAIL_USER=testuser@example.com
MAIL_PASSWORD=testpassword
MAIL_SENDER=sender@example.com
RABBITMQ_HOST=rabbitmq.example.com
RABBITMQ_USER=testuser
RABBITMQ_PASSWORD=testpassword
`)
	_, err = tempFile.Write(configData)
	require.NoError(t, err)
	require.NoError(t, tempFile.Close())

	config, err := loadConfig(tempFile.Name())
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "127.0.0.1", config.Host)
	assert.Equal(t, "production", config.Environment)
	assert.False(t, config.isDevelopment())
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.TrustedOrigins)
	assert.Equal(t, "supersecret", config.JWTSecret)
	assert.True(t, config.AuthRequired)
	assert.Equal(t, "localhost", config.DBHost)
	assert.Equal(t, "5432", config.DBPort)
	assert.Equal(t, "testuser", config.DBUser)
	assert.Equal(t, "testpassword", config.DBPassword)
	assert.Equal(t, "testdb", config.DBName)
	assert.Equal(t, "smtp.example.com", config.MailHost)
	assert.Equal(t, 2525, config.MailPort)
	assert.Equal(t, "testuser@example.com", config.MailUser)
	assert.Equal(t, "testpassword", config.MailPassword)
	assert.Equal(t, "sender@example.com", config.MailSender)
	assert.Equal(t, "rabbitmq.example.com", config.MQHost)
	assert.Equal(t, "5672", config.MQPort)
	assert.Equal(t, "testuser", config.MQUser)
	assert.Equal(t, "testpassword", config.MQPassword)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "4000", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.True(t, config.isDevelopment())
	assert.False(t, config.AuthRequired)
	assert.Equal(t, []string{"http://localhost:5173", "http://0.0.0.0:10000", "https://mern-blog-ui.netlify.app"}, config.TrustedOrigins)
	assert.Empty(t, config.MQHost)
	assert.Equal(t, 587, config.MailPort)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=8080\n"), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_REQUIRED", "true")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Port)
	assert.True(t, config.AuthRequired)
}

func TestSigningSecret(t *testing.T) {
	testCases := []struct {
		name        string
		environment string
		secret      string
		want        string
		wantErr     bool
	}{
		{name: "configured", environment: "production", secret: "s3cret", want: "s3cret"},
		{name: "development fallback", environment: "development", want: userservice.DevelopmentSecret},
		{name: "missing outside development", environment: "production", wantErr: true},
		{name: "missing in staging", environment: "staging", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := signingSecret(&Config{Environment: tc.environment, JWTSecret: tc.secret})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
