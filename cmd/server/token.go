package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "esgtrack/internal/jwt_token"
	"esgtrack/pkg/platform/secrets"
)

// newTokenCmd issues access tokens for operators and local development.
func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _ := setup()
			svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
			token, err := svc.GenerateAccessToken(subject, time.Now(), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "employee identifier recorded as the acting user")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	cmd.AddCommand(newClientCmd())
	return cmd
}

// newClientCmd creates credentials for an API client such as the ERP host.
// The secret is printed once; only its hash goes into API_CLIENTS.
func newClientCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Generate a client secret and its API_CLIENTS entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := secrets.Generate()
			if err != nil {
				return err
			}
			hash, err := secrets.Hash(secret)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "client_id=%s\nclient_secret=%s\nAPI_CLIENTS entry: %s=%s\n", id, secret, id, hash)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "client identifier, used as the token subject")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
