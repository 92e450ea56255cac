package tasks

import (
	"context"

	"github.com/julianstephens/nahar/internal/cli"
	"github.com/julianstephens/nahar/internal/tasks"
)

func resolveTaskID(ctx context.Context, store *tasks.Store, ref string) (string, error) {
	active, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(active))
	for i, t := range active {
		ids[i] = t.ID
	}
	return cli.MatchID(ids, ref)
}

func resolveArchivedID(ctx context.Context, store *tasks.Store, ref string) (string, error) {
	archived, err := store.ListArchived(ctx)
	if err != nil {
		return "", err
	}
	seen := map[string]bool{}
	var ids []string
	for _, a := range archived {
		if !seen[a.ID] {
			seen[a.ID] = true
			ids = append(ids, a.ID)
		}
	}
	return cli.MatchID(ids, ref)
}
