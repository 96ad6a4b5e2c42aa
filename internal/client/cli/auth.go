package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jkuschner/Document-Storage-App/internal/client/config"
	"github.com/jkuschner/Document-Storage-App/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// flowStage discriminates the two stages of the signup and reset flows.
// Each stage has its own required fields: credentials first, the emailed
// code second.
type flowStage int

const (
	stageCredentials flowStage = iota
	stageCode
)

// Login prompts for credentials and signs in. On success the session state
// is refetched so the guards flip to the authenticated command set.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile, err := a.resolver.SignIn(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Sign-in failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", profile.Email)
	a.resolveSession(ctx)
	return nil
}

// SignUp runs the two-stage signup flow: credentials, then the emailed
// confirmation code.
func (a *App) SignUp(ctx context.Context) error {
	var email string

	for stage := stageCredentials; ; {
		switch stage {
		case stageCredentials:
			var err error
			email, err = getSimpleText(a.reader, "Enter email", a.out)
			if err != nil {
				return err
			}

			printPasswordPolicy(a.out, a.resolver.Policy())
			password, err := getPassword(a.out, "Enter password")
			if err != nil {
				return err
			}

			_, err = a.resolver.SignUp(ctx, email, password)
			common.WipeByteArray(password)
			if err != nil {
				fmt.Fprintf(a.out, "Signup failed: %v\n", err)
				return err
			}

			fmt.Fprintln(a.out, "Account created. A confirmation code was sent to your email.")
			stage = stageCode

		case stageCode:
			code, err := getSimpleText(a.reader, "Enter confirmation code", a.out)
			if err != nil {
				return err
			}
			if err := a.resolver.ConfirmSignUp(ctx, email, code); err != nil {
				fmt.Fprintf(a.out, "Confirmation failed: %v\n", err)
				return err
			}
			fmt.Fprintln(a.out, "Account confirmed. You can now log in.")
			return nil
		}
	}
}

// Confirm finishes signup for an account created in an earlier run.
func (a *App) Confirm(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter confirmation code", a.out)
	if err != nil {
		return err
	}
	if err := a.resolver.ConfirmSignUp(ctx, email, code); err != nil {
		fmt.Fprintf(a.out, "Confirmation failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Account confirmed. You can now log in.")
	return nil
}

// Reset runs the two-stage password reset flow: request a code by email,
// then submit the code with the new password.
func (a *App) Reset(ctx context.Context) error {
	var email string

	for stage := stageCredentials; ; {
		switch stage {
		case stageCredentials:
			var err error
			email, err = getSimpleText(a.reader, "Enter email", a.out)
			if err != nil {
				return err
			}
			if err := a.resolver.RequestPasswordReset(ctx, email); err != nil {
				fmt.Fprintf(a.out, "Reset request failed: %v\n", err)
				return err
			}
			fmt.Fprintln(a.out, "If the account exists, a reset code has been sent.")
			stage = stageCode

		case stageCode:
			code, err := getSimpleText(a.reader, "Enter reset code", a.out)
			if err != nil {
				return err
			}

			printPasswordPolicy(a.out, a.resolver.Policy())
			password, err := getPassword(a.out, "Enter new password")
			if err != nil {
				return err
			}

			err = a.resolver.ConfirmPasswordReset(ctx, email, code, password)
			common.WipeByteArray(password)
			if err != nil {
				fmt.Fprintf(a.out, "Reset failed: %v\n", err)
				return err
			}
			fmt.Fprintln(a.out, "Password updated. You can now log in.")
			return nil
		}
	}
}

// ConfirmReset finishes a reset requested in an earlier run.
func (a *App) ConfirmReset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter reset code", a.out)
	if err != nil {
		return err
	}

	printPasswordPolicy(a.out, a.resolver.Policy())
	password, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}

	err = a.resolver.ConfirmPasswordReset(ctx, email, code, password)
	common.WipeByteArray(password)
	if err != nil {
		fmt.Fprintf(a.out, "Reset failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Password updated. You can now log in.")
	return nil
}

// Logout signs out and refetches the session state.
func (a *App) Logout(ctx context.Context) error {
	a.resolver.SignOut(ctx)
	a.lastList = nil
	fmt.Fprintln(a.out, "Signed out.")
	a.resolveSession(ctx)
	return nil
}

// WhoAmI prints the signed-in profile.
func (a *App) WhoAmI(ctx context.Context) error {
	profile := a.resolver.Profile()
	if profile == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %s, verified: %t)\n", profile.Email, profile.UserID, profile.EmailVerified)
	return nil
}

func printPasswordPolicy(w io.Writer, p config.PasswordPolicy) {
	fmt.Fprintf(w, "Password must be at least %d characters", p.MinLength)
	if p.RequireUppercase {
		fmt.Fprint(w, ", with an uppercase letter")
	}
	if p.RequireLowercase {
		fmt.Fprint(w, ", with a lowercase letter")
	}
	if p.RequireNumbers {
		fmt.Fprint(w, ", with a number")
	}
	if p.RequireSymbols {
		fmt.Fprint(w, ", with a symbol")
	}
	fmt.Fprintln(w, ".")
}
