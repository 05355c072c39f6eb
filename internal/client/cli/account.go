package cli

import (
	"context"
	"errors"
	"fmt"
)

// WhoAmI prints the current account.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	u, err := a.api.Me(ctx)
	if err != nil {
		return a.check(err)
	}

	a.userName = u.Email
	fmt.Fprintf(a.out, "%s <%s>, member since %s\n", u.Name, u.Email, u.CreatedAt.Local().Format("2006-01-02"))
	return nil
}

// Rename changes the account name and/or email.
func (a *App) Rename(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	name, err := getOptionalText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	email, err := getOptionalText(a.reader, "New email", a.out)
	if err != nil {
		return err
	}
	if name == nil && email == nil {
		return errors.New("nothing to change")
	}

	u, err := a.api.UpdateMe(ctx, name, email)
	if err != nil {
		return a.check(err)
	}

	a.userName = u.Email
	fmt.Fprintf(a.out, "Updated: %s <%s>\n", u.Name, u.Email)
	return nil
}
