package form

import (
	"context"
	"errors"
	"strings"
)

const emptyQueryWarning = "Please enter a query to get a response from the agent."

// Submit is one press of the ask button: validate, send, render.
func Submit(ctx context.Context, c *Client, ui *UI, f Form) error {
	if strings.TrimSpace(f.Query) == "" {
		ui.Warning(emptyQueryWarning)
		return ErrEmptyQuery
	}

	if tools := f.EnabledTools(); len(tools) > 0 {
		ui.Info("Tools enabled: " + strings.Join(tools, ", "))
	}
	ui.Info("Agent is thinking...")

	answer, err := c.Ask(ctx, f.Request())
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			ui.Warning(emptyQueryWarning)
		} else {
			ui.Error(err)
		}
		return err
	}

	ui.Response(answer)
	return nil
}
