package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// List prints the caller's notes, oldest first.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		return a.check(err)
	}

	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes yet.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

// Add prompts for a title, a multi-line description and an optional tag.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	tag, err := getSimpleText(a.reader, "Enter tag (Enter for default)", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.AddNote(ctx, title, description, tag)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Added:", n.ID)
	return nil
}

// Edit updates only the fields the user answers.
func (a *App) Edit(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.promptID()
	if err != nil {
		return err
	}

	var ch models.NoteChanges
	if ch.Title, err = getOptionalText(a.reader, "New title", a.out); err != nil {
		return err
	}
	if ch.Description, err = getOptionalText(a.reader, "New description", a.out); err != nil {
		return err
	}
	if ch.Tag, err = getOptionalText(a.reader, "New tag", a.out); err != nil {
		return err
	}
	if ch.IsEmpty() {
		return errors.New("nothing to change")
	}

	n, err := a.api.UpdateNote(ctx, id, ch)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Updated:")
	fmt.Fprintln(a.out, n)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.promptID()
	if err != nil {
		return err
	}

	n, err := a.api.DeleteNote(ctx, id)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Deleted:", n.Title)
	return nil
}

func (a *App) promptID() (string, error) {
	id, err := getSimpleText(a.reader, "Enter note ID", a.out)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("note ID is required")
	}
	return id, nil
}
