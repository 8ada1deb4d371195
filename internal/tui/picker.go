package tui

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
)

func bundleOptions(bundles []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(bundles))
	for _, b := range bundles {
		label := filepath.Base(b)
		if fi, err := os.Stat(b); err == nil {
			label += "  " + fi.ModTime().Format("2006-01-02 15:04:05")
		}
		opts = append(opts, huh.NewOption(label, b))
	}
	return opts
}

// PickBundle asks the user to choose one of bundles. It returns "" with a nil
// error when the prompt is aborted.
func PickBundle(bundles []string) (string, error) {
	switch len(bundles) {
	case 0:
		return "", nil
	case 1:
		return bundles[0], nil
	}
	choice := bundles[0]
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Result bundle").
				Options(bundleOptions(bundles)...).
				Value(&choice),
		),
	).WithShowHelp(true)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return choice, nil
}
