package manifest

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func planEntries() []Entry {
	return []Entry{
		{
			SourcePath: "/raw/hugo/les-miserables.epub",
			TargetPath: "/library/Hugo, Victor/les-miserables.epub",
			Author:     "Hugo, Victor",
			Reasons:    []string{"author_from_parent_dir"},
		},
		{
			SourcePath: "/raw/zola/germinal.epub",
			TargetPath: "/library/Zola, Émile/germinal.epub",
			Author:     "Zola, Émile",
			Reasons:    []string{"author_from_filename", "illegal_chars_fixed"},
		},
	}
}

func TestSavePlanAndPending(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, "batch-1", planEntries()); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	pending, err := store.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(pending))
	}
	if pending[0].Status != StatusPlanned {
		t.Fatalf("unexpected status %q", pending[0].Status)
	}
	if got := pending[1].Reasons; len(got) != 2 || got[1] != "illegal_chars_fixed" {
		t.Fatalf("reasons round-trip failed: %v", got)
	}
}

func TestSavePlanDoesNotTouchTerminalRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entries := planEntries()
	if err := store.SavePlan(ctx, "batch-1", entries); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	pending, err := store.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if err := store.MarkResult(ctx, pending[0].ID, StatusCopied, pending[0].TargetPath, ""); err != nil {
		t.Fatalf("mark result: %v", err)
	}

	// Re-plan with a different target for the copied entry.
	entries[0].TargetPath = "/library/Other, Name/les-miserables.epub"
	if err := store.SavePlan(ctx, "batch-2", entries); err != nil {
		t.Fatalf("re-plan: %v", err)
	}

	copied, err := store.GetBySourcePath(ctx, entries[0].SourcePath)
	if err != nil {
		t.Fatalf("get by source: %v", err)
	}
	if copied.Status != StatusCopied {
		t.Fatalf("terminal status overwritten: %q", copied.Status)
	}
	if copied.TargetPath != "/library/Hugo, Victor/les-miserables.epub" {
		t.Fatalf("terminal target overwritten: %q", copied.TargetPath)
	}

	// The still-planned row takes the new batch.
	planned, err := store.GetBySourcePath(ctx, entries[1].SourcePath)
	if err != nil {
		t.Fatalf("get planned: %v", err)
	}
	if planned.BatchID != "batch-2" {
		t.Fatalf("planned row not refreshed: %q", planned.BatchID)
	}
}

func TestMarkResultAndSummarize(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, "batch-1", planEntries()); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	pending, _ := store.Pending(ctx)

	if err := store.MarkResult(ctx, pending[0].ID, StatusCopied, pending[0].TargetPath, ""); err != nil {
		t.Fatalf("mark copied: %v", err)
	}
	if err := store.MarkResult(ctx, pending[1].ID, StatusFailed, "", "permission denied"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	summary, err := store.Summarize(ctx, "batch-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Copied != 1 || summary.Failed != 1 || summary.Planned != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Total() != 2 {
		t.Fatalf("unexpected total %d", summary.Total())
	}

	failed, err := store.ByStatus(ctx, StatusFailed)
	if err != nil {
		t.Fatalf("by status: %v", err)
	}
	if len(failed) != 1 || failed[0].ErrorMessage != "permission denied" {
		t.Fatalf("failed entry not recorded: %+v", failed)
	}
}

func TestMarkResultUnknownID(t *testing.T) {
	store := openTestStore(t)
	if err := store.MarkResult(context.Background(), 99, StatusCopied, "", ""); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestResetFailed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SavePlan(ctx, "batch-1", planEntries()); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	pending, _ := store.Pending(ctx)
	if err := store.MarkResult(ctx, pending[0].ID, StatusFailed, "", "disk full"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	n, err := store.ResetFailed(ctx)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 reset row, got %d", n)
	}

	pending, err = store.Pending(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending after reset, got %d", len(pending))
	}
}

func TestGetBySourcePathMissing(t *testing.T) {
	store := openTestStore(t)
	entry, err := store.GetBySourcePath(context.Background(), "/nowhere.epub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}
}
