package repository

import (
	"context"
	"fmt"
	"slices"
)

// CopyResult counts the records written by Copy.
type CopyResult struct {
	Posts    int
	Contacts int
}

// Copy writes every record of src that dst does not already hold into dst,
// oldest first, so that both stores list records in the same order.
// Records are matched by ID; running Copy twice writes nothing the second time.
func Copy(ctx context.Context, src, dst *Stores) (CopyResult, error) {
	var res CopyResult

	posts, err := src.Posts.List(ctx)
	if err != nil {
		return res, fmt.Errorf("read posts: %w", err)
	}
	have, err := dst.Posts.List(ctx)
	if err != nil {
		return res, fmt.Errorf("read target posts: %w", err)
	}
	seen := make(map[string]bool, len(have))
	for _, p := range have {
		seen[p.ID] = true
	}
	for _, p := range slices.Backward(posts) {
		if seen[p.ID] {
			continue
		}
		if err := dst.Posts.Create(ctx, p); err != nil {
			return res, fmt.Errorf("copy post %s: %w", p.ID, err)
		}
		res.Posts++
	}

	msgs, err := src.Contacts.List(ctx)
	if err != nil {
		return res, fmt.Errorf("read contacts: %w", err)
	}
	haveMsgs, err := dst.Contacts.List(ctx)
	if err != nil {
		return res, fmt.Errorf("read target contacts: %w", err)
	}
	clear(seen)
	for _, m := range haveMsgs {
		seen[m.ID] = true
	}
	for _, m := range slices.Backward(msgs) {
		if seen[m.ID] {
			continue
		}
		if err := dst.Contacts.Save(ctx, m); err != nil {
			return res, fmt.Errorf("copy contact %s: %w", m.ID, err)
		}
		res.Contacts++
	}
	return res, nil
}
