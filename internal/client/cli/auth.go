package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dberzins/stockroom/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. On success the returned session is saved and an initial
// refetch is started, so a freshly registered user lands in a consistent
// state without a separate login step.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.client.Register(ctx, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	a.session.Save(*sess)
	a.userEmail = email

	if err := a.coordinator.Refresh(ctx); err != nil {
		log.Printf("Initial refresh failed: %s", err.Error())
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials, authenticates against the backend
// and saves the resulting tokens. A successful login immediately triggers a
// full refetch so the first 'groups' command shows live data; a failed
// refetch is only logged, the session stays valid.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	a.session.Save(*sess)
	a.userEmail = email
	log.Printf("Login successfull")

	if err := a.coordinator.Refresh(ctx); err != nil {
		log.Printf("Initial refresh failed: %s", err.Error())
	}

	return nil
}

// Logout drops the in-memory session and clears every cached record, so no
// inventory data survives past the end of the session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Clear()
	a.coordinator.Reset()
	a.userEmail = ""
	return nil
}
