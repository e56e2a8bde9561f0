package cli

import (
	"context"
	"errors"
	"os"

	"github.com/sieke13/bookshelf/internal/client/api"
	"github.com/sieke13/bookshelf/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	res, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		printlnFn("Registration unsuccessful:", err.Error())
		return err
	}

	a.startSession(res)
	printlnFn("Registered and logged in as", res.User.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthenticated) {
			printlnFn("Login unsuccessful: wrong email or password")
		} else {
			printlnFn("Login unsuccessful:", err.Error())
		}
		return err
	}

	a.startSession(res)
	printlnFn("Login successful")
	return nil
}

// startSession persists the token and seeds the cache with the profile the
// server returned alongside it.
func (a *App) startSession(res *api.AuthResult) {
	if err := a.session.Login(res.Token); err != nil {
		printlnFn("warning: could not persist session:", err.Error())
	}
	if err := a.cache.Store(res.User); err != nil {
		printlnFn("warning: could not update cache:", err.Error())
	}
	a.username = res.User.Username
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if err := a.cache.Clear(); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	a.username = ""
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	profile, err := a.api.Me(ctx)
	if err != nil {
		// The server is the source of truth, but a cached profile is
		// better than nothing when it is unreachable.
		if errors.Is(err, common.ErrorUpstreamUnavailable) {
			if cached, cacheErr := a.cache.Load(); cacheErr == nil && cached != nil {
				printlnFn(cached.Username, "<"+cached.Email+">", "(cached)")
				return nil
			}
		}
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.cache.Store(profile); err != nil {
		printlnFn("warning: could not update cache:", err.Error())
	}
	a.username = profile.Username

	printlnFn(profile.Username, "<"+profile.Email+">")
	return nil
}
