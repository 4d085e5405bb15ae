package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "esgtrack/internal/jwt_token"
	"esgtrack/internal/platform/config"
	"esgtrack/pkg/platform/secrets"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "cli-test")
	out := strings.TrimSpace(execute(t, "token", "--subject", "HR-EMP-0001", "--ttl", "1h"))

	cfg := config.FromEnv()
	claims, err := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience).ValidateToken(out)
	require.NoError(t, err)
	assert.Equal(t, "HR-EMP-0001", claims.Subject)
}

func TestTokenClientCommand(t *testing.T) {
	out := execute(t, "token", "client", "--id", "erp-host")

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(strings.TrimPrefix(line, "API_CLIENTS entry: "), "=")
		require.True(t, ok, line)
		fields[k] = v
	}
	assert.Equal(t, "erp-host", fields["client_id"])
	require.NotEmpty(t, fields["client_secret"])
	require.NotEmpty(t, fields["erp-host"])
	assert.NoError(t, secrets.Verify(fields["client_secret"], fields["erp-host"]))
}
