package help

const QuickstartYAML = `# glean Quick Start

commands:
  capture: |
    glean capture --urls "https://react.dev/learn"

  capture_many: |
    glean capture --urls "url1,url2,url3" --workers 8

  list_entries: |
    glean kb list
    glean kb list --subject "Web Development"
    glean kb list --subject "Database" --topic "SQL"

  show_entry: |
    glean kb show 3

  search_entries: |
    glean kb search "virtual dom"

  statistics: |
    glean kb stats

  capture_runs: |
    glean kb runs

  analyze_without_saving: |
    glean summarize --url "https://react.dev/learn"
    glean classify --file notes/page.html

storage:
  - "Entries live in a SQLite knowledge base (path shown by 'glean kb stats')"
  - "Auto-incrementing entry IDs (1, 2, 3...)"
  - "Duplicate URLs are skipped, the first capture wins"
  - "Fetched pages are cached on disk, so repeat captures skip the network"

reports:
  - "Every capture run writes run-<id>.yaml to the report directory"
  - "Report keywords come from word frequency across the captured pages"
`
