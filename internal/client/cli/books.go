package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) Search(ctx context.Context, query string) error {
	books, err := a.catalog.Search(ctx, query)
	if err != nil {
		printlnFn("Search failed:", err.Error())
		return err
	}

	a.lastResults = books

	if len(books) == 0 {
		printlnFn("No results")
		return nil
	}

	for i, b := range books {
		marker := " "
		if a.cache.IsSaved(b.BookID) {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %2d. %s by %s [%s]", marker, i+1, b.Title, strings.Join(b.Authors, ", "), b.BookID))
	}
	printlnFn("(* already saved; use 'save <n>' to save a result)")
	return nil
}

func (a *App) Save(ctx context.Context, arg string) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first")
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.lastResults) {
		printlnFn("Usage: save <n>, where n is a result number from the last search")
		return nil
	}

	book := a.lastResults[n-1]

	profile, err := a.api.SaveBook(ctx, book)
	if err != nil {
		printlnFn("Save failed:", err.Error())
		return err
	}

	if err := a.cache.Store(profile); err != nil {
		printlnFn("warning: could not update cache:", err.Error())
	}

	printlnFn("Saved:", book.Title)
	return nil
}

func (a *App) Remove(ctx context.Context, bookID string) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first")
		return nil
	}

	profile, err := a.api.RemoveBook(ctx, bookID)
	if err != nil {
		printlnFn("Remove failed:", err.Error())
		return err
	}

	if err := a.cache.Store(profile); err != nil {
		printlnFn("warning: could not update cache:", err.Error())
	}

	printlnFn("Removed:", bookID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You need to log in first")
		return nil
	}

	profile, err := a.api.Me(ctx)
	if err != nil {
		printlnFn("List failed:", err.Error())
		return err
	}

	if err := a.cache.Store(profile); err != nil {
		printlnFn("warning: could not update cache:", err.Error())
	}

	if len(profile.SavedBooks) == 0 {
		printlnFn("No saved books")
		return nil
	}

	for _, b := range profile.SavedBooks {
		printlnFn(fmt.Sprintf("%s by %s [%s]", b.Title, strings.Join(b.Authors, ", "), b.BookID))
	}
	return nil
}
