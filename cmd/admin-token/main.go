// Command admin-token mints a signed access token for local development
// and operational poking. It needs only the private signing key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/haven/api/pkg/jwt"
)

func main() {
	var (
		keyPath = flag.String("key", "./keys/private.pem", "path to the JWT private key")
		userID  = flag.String("user", "user:admin-dev", "user id to embed in the token")
		email   = flag.String("email", "admin@haven.dev", "email to embed in the token")
		issuer  = flag.String("issuer", "haven.forgo.software", "token issuer")
		expMins = flag.Int("exp", 60*24*7, "token lifetime in minutes")
		asJSON  = flag.Bool("json", false, "print the token as a JSON document")
	)
	flag.Parse()

	signer, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *keyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-token: %v\n", err)
		fmt.Fprintln(os.Stderr, "generate a key pair first: make keys-generate")
		os.Exit(1)
	}

	token, err := signer.Sign(jwt.Claims{
		UserID:   *userID,
		Email:    *email,
		Username: "Admin",
		Role:     "admin",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "admin-token: signing failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"email":        *email,
			"role":         "admin",
		})
		return
	}

	expires := time.Now().Add(time.Duration(*expMins) * time.Minute).Format(time.RFC3339)
	fmt.Printf("admin token for %s (%s), expires %s\n\n", *userID, *email, expires)
	fmt.Println(token)
	fmt.Println()
	fmt.Printf("try it:\n  curl -H 'Authorization: Bearer %s...' http://localhost:8080/v1/auth/me\n", token[:50])
}
