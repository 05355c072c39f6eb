package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText, getPassword, getMultiline and getOptionalText are
// indirections used to facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getOptionalText = GetOptionalText
)

// Register prompts for name, email and password and creates an account.
// The server logs the new user in right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, name, email, string(password)); err != nil {
		return err
	}

	a.userName = email
	fmt.Fprintln(a.out, "Registered and logged in.")
	return nil
}

// Login prompts for credentials and keeps the issued token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.userName = email
	fmt.Fprintln(a.out, "Login successful.")
	return nil
}

// Logout forgets the token. Tokens are stateless, so nothing is sent to
// the server.
func (a *App) Logout(ctx context.Context) error {
	a.api.SetToken("")
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
