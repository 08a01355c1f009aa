// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/palemoky/go-fish/internal/ui/model"
	"github.com/palemoky/go-fish/internal/ui/view"
)

// NewTableModel creates the table screen with the terminal renderer installed.
func NewTableModel(deps model.Deps) *model.TableModel {
	m := model.NewTableModel(deps)
	m.SetViewRenderer(view.CreateViewRenderer())
	return m
}
