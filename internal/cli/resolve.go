package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches arg against ids exactly, then as a unique prefix.
func resolveID(kind, arg string, ids []string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: matches %d %ss", arg, len(matches), kind)
	}
}

func resolveWorkItemID(ctx context.Context, app *App, arg string) (string, error) {
	items, err := app.WorkItems.List(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(items))
	for i, w := range items {
		ids[i] = w.ID
	}
	return resolveID("work item", arg, ids)
}

func resolveEventID(ctx context.Context, app *App, arg string) (string, error) {
	events, err := app.Events.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return resolveID("event", arg, ids)
}

// titlesByID maps every stored work item to its title, including retired ones.
func titlesByID(ctx context.Context, app *App) (map[string]string, error) {
	items, err := app.WorkItems.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(items))
	for _, w := range items {
		out[w.ID] = w.Title
	}
	return out, nil
}
