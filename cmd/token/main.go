// Command token prints an access token, for operators and local testing.
//
//	token -user 12 -role member -email ada@example.com
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/auth"
	"github.com/Wezylnia/GymSystem-sub001/internal/config"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
)

func main() {
	userID := flag.Int("user", 0, "subject id; for members this is the member id")
	role := flag.String("role", auth.RoleMember, "member, staff or admin")
	email := flag.String("email", "", "e-mail claim")
	ttl := flag.Duration("ttl", auth.AccessTokenTTL, "token lifetime")
	flag.Parse()

	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "-user must be positive")
		os.Exit(2)
	}
	if !auth.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "%v: %q\n", auth.ErrUnknownRole, *role)
		os.Exit(2)
	}

	token, err := auth.GenerateToken(*userID, *email, *role, cfg.JWTSecret, *ttl)
	if err != nil {
		logger.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
	if *ttl > 24*time.Hour {
		fmt.Fprintln(os.Stderr, "warning: token lifetime exceeds one day")
	}
}
