package cli

import (
	"context"
	"os"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and password and creates a new account.
// Registration does not sign the user in; they log in explicitly afterwards.
// The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		printlnFn("Passwords do not match")
		return nil
	}

	if _, err := a.session.SignUp(ctx, email, string(password)); err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Account created, you can now log in")
	return nil
}

// Login prompts for credentials and signs the user in. Failures are shown
// as the generic lines the session layer produces; lockouts include the
// remaining wait time.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.session.SignIn(ctx, email, string(password))
	if err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Signed in as", session.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.SignOut(ctx)
	printlnFn("Signed out")
	return nil
}

// Passwd changes the password of the signed-in account. The current
// password is verified first; the new one must satisfy the policy and
// differ from the current.
func (a *App) Passwd(ctx context.Context) error {
	session := a.session.Current()
	if session == nil {
		printlnFn("Log in first")
		return nil
	}

	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.auth.ChangePassword(ctx, session.AccountID, string(current), string(next)); err != nil {
		printlnFn(userMessage(err))
		return err
	}

	printlnFn("Password changed")
	return nil
}
