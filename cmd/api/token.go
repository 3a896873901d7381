package main

import (
	"fmt"
	"os"
	"time"

	jwtauth "github.com/Trinidad006/CownectWeb-sub000/internal/adapters/auth/jwt"

	"github.com/spf13/cobra"
)

// tokenCommand emite un token HS256 para probar AUTH_MODE=jwt en local.
func tokenCommand() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token de desarrollo firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := jwtauth.NewVerifier(jwtauth.Config{
				Secret: os.Getenv("JWT_SECRET"),
				Issuer: os.Getenv("JWT_ISSUER"),
			})
			if err != nil {
				return err
			}
			token, err := v.Sign(userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "ID de usuario (sub)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Vigencia del token")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
