package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/clipview"
)

// Compile-time interface verification.
var _ clipview.Picker = (*Picker)(nil)

// Picker implements clipview.Picker using a Bubble Tea TUI.
type Picker struct {
	service     clipview.Service
	opts        []ModelOption
	programOpts []tea.ProgramOption
}

// NewPicker creates a Picker over service. Model options are applied to
// every model it runs.
func NewPicker(service clipview.Service, opts ...ModelOption) *Picker {
	return &Picker{
		service: service,
		opts:    opts,
		programOpts: []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithReportFocus(),
		},
	}
}

// WithProgramOptions replaces the Bubble Tea program options.
func (p *Picker) WithProgramOptions(opts ...tea.ProgramOption) *Picker {
	p.programOpts = opts
	return p
}

// Pick displays the history and blocks until the user pastes an item or
// closes the picker. History changes reported by the service refresh the
// list while it is open.
func (p *Picker) Pick(ctx context.Context) (*clipview.Item, error) {
	opts := append(append([]ModelOption(nil), p.opts...), WithContext(ctx))
	m := NewModel(p.service, opts...)

	programOpts := append(append([]tea.ProgramOption(nil), p.programOpts...), tea.WithContext(ctx))
	prog := tea.NewProgram(m, programOpts...)

	unsubscribe := p.service.Subscribe(func() {
		prog.Send(ClipboardChangedMsg{})
	})
	defer unsubscribe()

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run picker: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if it, ok := fm.Pasted(); ok {
		return &it, nil
	}
	return nil, nil
}
