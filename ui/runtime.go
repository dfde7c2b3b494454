package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
)

func Start(source string, pairs []gnode.NodeObjPair) error {
	browser := NewBrowser(source, pairs)
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}
