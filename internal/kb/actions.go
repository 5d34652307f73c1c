package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gleanhq/glean/internal/common"
	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/help"
	"github.com/gleanhq/glean/pkg/knowledge"
	"github.com/gleanhq/glean/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func openStore(c *cli.Context) (*knowledge.Store, error) {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return nil, err
	}
	store, err := knowledge.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	return store, nil
}

// ListAction prints entries, optionally narrowed to one attribute
// or to a subject+topic pair.
func ListAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, filtered, err := filteredEntries(c, store)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		if filtered {
			fmt.Println("No entries found matching filters")
			return nil
		}
		fmt.Println("Knowledge base is empty")
		fmt.Println()
		fmt.Print(help.QuickstartYAML)
		return nil
	}

	total := len(entries)
	if limit := c.Int("limit"); limit > 0 && total > limit {
		entries = entries[:limit]
	}

	printEntryTable(entries)
	if len(entries) < total {
		fmt.Printf("\nShowing %d of %d entries\n", len(entries), total)
	} else {
		fmt.Printf("\nTotal: %d entries\n", total)
	}
	fmt.Printf("\nTip: Use 'glean kb show <id>' to see the full entry\n")

	return nil
}

func filteredEntries(c *cli.Context, store *knowledge.Store) ([]models.KnowledgeEntry, bool, error) {
	type filter struct {
		attr  knowledge.Attribute
		value string
	}

	var filters []filter
	for _, f := range []filter{
		{knowledge.AttrSubject, c.String("subject")},
		{knowledge.AttrTopic, c.String("topic")},
		{knowledge.AttrChapter, c.String("chapter")},
		{knowledge.AttrURL, c.String("url")},
	} {
		if f.value != "" {
			filters = append(filters, f)
		}
	}

	switch len(filters) {
	case 0:
		entries, err := store.All(c.Context)
		return entries, false, err
	case 1:
		entries, err := store.GetBy(c.Context, filters[0].attr, filters[0].value)
		return entries, true, err
	case 2:
		if filters[0].attr == knowledge.AttrSubject && filters[1].attr == knowledge.AttrTopic {
			entries, err := store.GetBySubjectTopic(c.Context, filters[0].value, filters[1].value)
			return entries, true, err
		}
	}
	return nil, true, fmt.Errorf("use a single filter, or --subject together with --topic")
}

func printEntryTable(entries []models.KnowledgeEntry) {
	fmt.Printf("%-5s %-17s %-18s %-16s %-16s %s\n",
		"ID", "Captured", "Subject", "Topic", "Chapter", "Title")
	fmt.Println(strings.Repeat("-", 100))

	for _, e := range entries {
		fmt.Printf("%-5d %-17s %-18s %-16s %-16s %s\n",
			e.ID,
			e.CapturedAt.Format("2006-01-02 15:04"),
			e.Subject,
			e.Topic,
			e.Chapter,
			e.Title,
		)
	}
}

// ShowAction prints one entry as YAML. Without an ID it shows the
// most recently captured entry.
func ShowAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := entryFromArgOrLatest(c, store)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	fmt.Print(string(out))

	return nil
}

func entryFromArgOrLatest(c *cli.Context, store *knowledge.Store) (models.KnowledgeEntry, error) {
	if c.NArg() == 0 {
		entries, err := store.All(c.Context)
		if err != nil {
			return models.KnowledgeEntry{}, fmt.Errorf("failed to list entries: %w", err)
		}
		if len(entries) == 0 {
			return models.KnowledgeEntry{}, fmt.Errorf("knowledge base is empty. Run 'glean capture --urls \"...\"' first")
		}
		return entries[len(entries)-1], nil
	}

	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return models.KnowledgeEntry{}, fmt.Errorf("invalid entry ID: %s", c.Args().First())
	}

	entry, err := store.GetByID(c.Context, id)
	if errors.Is(err, knowledge.ErrNotFound) {
		return entry, fmt.Errorf("no entry with ID %d\nTip: Use 'glean kb list' to see captured entries", id)
	}
	return entry, err
}

// SearchAction finds entries whose text mentions the given words.
func SearchAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search text required\nUsage: glean kb search <text>\nExample: glean kb search \"virtual dom\"")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	text := strings.Join(c.Args().Slice(), " ")
	entries, err := store.Search(c.Context, text)
	if err != nil {
		return fmt.Errorf("failed to search entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries match %q\n", text)
		return nil
	}

	printEntryTable(entries)
	fmt.Printf("\nFound: %d entries\n", len(entries))

	return nil
}

// DeleteAction removes one entry by ID.
func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("entry ID required\nUsage: glean kb delete <id>\nExample: glean kb delete 3")
	}

	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry ID: %s", c.Args().First())
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Delete(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if removed {
		fmt.Printf("Deleted entry %d\n", id)
	} else {
		fmt.Printf("No entry with ID %d; nothing deleted\n", id)
	}

	return nil
}

// ClearAction removes every entry. It refuses to run without --yes.
func ClearAction(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("this removes every entry from the knowledge base\nRe-run with --yes to confirm: glean kb clear --yes")
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clear(c.Context)
	if err != nil {
		return fmt.Errorf("failed to clear knowledge base: %w", err)
	}

	fmt.Printf("Removed %d entries\n", removed)

	return nil
}

// StatsAction prints entry counts grouped by subject, topic and chapter.
func StatsAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(c.Context)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	fmt.Printf("Knowledge base: %s\n", store.Path())
	fmt.Printf("Entries:        %d\n", stats.TotalEntries)

	if stats.TotalEntries == 0 {
		fmt.Println()
		fmt.Print(help.QuickstartYAML)
		return nil
	}

	printCounts("Subjects", stats.BySubject, stats.UniqueSubjects)
	printCounts("Topics", stats.ByTopic, stats.UniqueTopics)
	printCounts("Chapters", stats.ByChapter, stats.UniqueChapters)

	return nil
}

type countRow struct {
	name  string
	count int
}

func printCounts(label string, counts map[string]int, unique int) {
	fmt.Printf("\n%s (%d):\n", label, unique)
	for _, row := range sortedCounts(counts) {
		fmt.Printf("  %-24s %d\n", row.name, row.count)
	}
}

// sortedCounts orders by count descending, then name, so output is stable.
func sortedCounts(counts map[string]int) []countRow {
	rows := make([]countRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, countRow{name: name, count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	return rows
}

// RunsAction lists recorded capture runs, newest first.
func RunsAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list capture runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No capture runs recorded")
		fmt.Printf("\nTip: Run 'glean capture --urls \"...\"' to capture pages\n")
		return nil
	}

	fmt.Printf("%-6s %-20s %-10s %-6s %-6s %-6s %-6s\n",
		"ID", "Started", "Duration", "URLs", "Saved", "Dup", "Failed")
	fmt.Println(strings.Repeat("-", 70))

	for _, run := range runs {
		duration := fmt.Sprintf("%.1fs", run.FinishedAt.Sub(run.StartedAt).Seconds())
		fmt.Printf("%-6d %-20s %-10s %-6d %-6d %-6d %-6d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			duration,
			run.URLCount,
			run.Saved,
			run.Duplicates,
			run.Failed,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))

	return nil
}

// ExportAction writes every entry to a file in the chosen directory,
// as entries.yaml or entries.json.
func ExportAction(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("Knowledge base is empty; nothing to export")
		return nil
	}

	var data []byte
	var name string
	switch format := strings.ToLower(c.String("format")); format {
	case "", "yaml":
		name = "entries.yaml"
		data, err = yaml.Marshal(entries)
	case "json":
		name = "entries.json"
		data, err = json.MarshalIndent(entries, "", "  ")
	default:
		return fmt.Errorf("unknown format: %s (use: yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	path := filepath.Join(c.String("dir"), name)
	files := &storage.Storage{}
	if err := files.SaveFile(path, data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), path)

	return nil
}
