package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one labeled keyword set inside a table.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered list of categories plus the selection rules applied
// to it. Declaration order is the tie-break priority: on equal scores the
// earlier category wins.
type Table struct {
	Categories []Category `yaml:"categories"`
	Fallback   string     `yaml:"fallback"`
	MinScore   int        `yaml:"min_score"`
}

// Taxonomy is the full three-level keyword configuration. It is immutable
// once handed to a Classifier.
type Taxonomy struct {
	Subjects Table `yaml:"subjects"`
	Topics   Table `yaml:"topics"`
	Chapters Table `yaml:"chapters"`
}

// Validate rejects tables that would make classification ambiguous.
func (t *Taxonomy) Validate() error {
	for _, tab := range []struct {
		name  string
		table Table
	}{
		{"subjects", t.Subjects},
		{"topics", t.Topics},
		{"chapters", t.Chapters},
	} {
		if len(tab.table.Categories) == 0 {
			return fmt.Errorf("taxonomy %s: no categories", tab.name)
		}
		if tab.table.Fallback == "" {
			return fmt.Errorf("taxonomy %s: missing fallback", tab.name)
		}
		seen := make(map[string]struct{})
		for _, cat := range tab.table.Categories {
			if cat.Name == "" {
				return fmt.Errorf("taxonomy %s: category with empty name", tab.name)
			}
			if _, dup := seen[cat.Name]; dup {
				return fmt.Errorf("taxonomy %s: duplicate category %q", tab.name, cat.Name)
			}
			seen[cat.Name] = struct{}{}
			if len(cat.Keywords) == 0 {
				return fmt.Errorf("taxonomy %s: category %q has no keywords", tab.name, cat.Name)
			}
		}
	}
	return nil
}

// LoadTaxonomyFile reads a taxonomy override from a YAML file. Omitted
// min_score and fallback values take the built-in defaults.
func LoadTaxonomyFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}

	def := DefaultTaxonomy()
	fillTableDefaults(&tax.Subjects, def.Subjects)
	fillTableDefaults(&tax.Topics, def.Topics)
	fillTableDefaults(&tax.Chapters, def.Chapters)

	if err := tax.Validate(); err != nil {
		return Taxonomy{}, err
	}
	return tax, nil
}

func fillTableDefaults(tab *Table, def Table) {
	if tab.MinScore <= 0 {
		tab.MinScore = def.MinScore
	}
	if tab.Fallback == "" {
		tab.Fallback = def.Fallback
	}
}

// DefaultTaxonomy returns the built-in study taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Subjects: Table{
			Fallback: "General",
			MinScore: 2,
			Categories: []Category{
				{Name: "Programming", Keywords: []string{
					"programming", "algorithm", "algorithms", "source code",
					"compiler", "debugging", "refactoring", "object-oriented",
					"functional programming", "recursion", "pseudocode",
					"design pattern", "design patterns", "code review",
				}},
				{Name: "Web Development", Keywords: []string{
					"html", "css", "javascript", "typescript", "react",
					"angular", "vue", "svelte", "frontend", "backend",
					"full stack", "web development", "dom", "rest api",
					"http request", "node.js", "npm", "webpack", "browser",
					"responsive design", "web application",
				}},
				{Name: "Database", Keywords: []string{
					"database", "databases", "sql", "nosql", "mysql",
					"postgresql", "postgres", "mongodb", "sqlite", "redis",
					"query", "queries", "schema", "normalization",
					"transaction", "transactions", "primary key",
					"foreign key", "stored procedure", "index", "indexes",
					"indexing",
				}},
				{Name: "Machine Learning", Keywords: []string{
					"machine learning", "deep learning", "neural network",
					"neural networks", "training data", "dataset", "datasets",
					"regression", "clustering", "supervised learning",
					"unsupervised learning", "tensorflow", "pytorch",
					"gradient descent", "overfitting", "feature engineering",
				}},
				{Name: "Mathematics", Keywords: []string{
					"mathematics", "algebra", "calculus", "geometry",
					"trigonometry", "theorem", "theorems", "equation",
					"equations", "derivative", "derivatives", "integral",
					"integrals", "matrix", "matrices", "probability",
					"number theory",
				}},
				{Name: "Science", Keywords: []string{
					"physics", "chemistry", "biology", "experiment",
					"experiments", "molecule", "molecules", "atom", "atoms",
					"electron", "photosynthesis", "evolution", "quantum",
					"thermodynamics", "chemical reaction", "organism",
					"ecosystem",
				}},
				{Name: "Networking", Keywords: []string{
					"networking", "network protocol", "tcp", "udp",
					"ip address", "routing", "router", "dns", "firewall",
					"ethernet", "subnet", "osi model", "bandwidth", "latency",
					"packet", "packets", "load balancer",
				}},
				{Name: "Operating Systems", Keywords: []string{
					"operating system", "operating systems", "kernel",
					"process scheduling", "memory management", "file system",
					"filesystem", "linux", "unix", "virtualization",
					"deadlock", "paging", "system call", "system calls",
					"multithreading",
				}},
			},
		},
		Topics: Table{
			Fallback: "Miscellaneous",
			MinScore: 1,
			Categories: []Category{
				{Name: "React", Keywords: []string{
					"react", "jsx", "usestate", "useeffect", "hooks", "props",
					"redux", "virtual dom",
				}},
				{Name: "JavaScript", Keywords: []string{
					"javascript", "ecmascript", "es6", "promises",
					"async await", "closure", "closures", "prototype chain",
					"arrow function", "arrow functions", "callback",
					"callbacks", "event loop",
				}},
				{Name: "CSS", Keywords: []string{
					"css", "flexbox", "css grid", "selectors", "stylesheet",
					"media query", "media queries", "box model",
					"css variables",
				}},
				{Name: "HTML", Keywords: []string{
					"html", "semantic html", "html element", "html elements",
					"html form", "html forms", "markup language",
				}},
				{Name: "SQL", Keywords: []string{
					"sql", "select statement", "inner join", "left join",
					"outer join", "group by", "subquery", "subqueries",
					"where clause", "aggregate function", "aggregate functions",
					"sql injection",
				}},
				{Name: "Python", Keywords: []string{
					"python", "pandas", "numpy", "django", "flask",
					"list comprehension", "list comprehensions", "virtualenv",
				}},
				{Name: "Go", Keywords: []string{
					"golang", "goroutine", "goroutines", "go module",
					"go modules",
				}},
				{Name: "Algorithms", Keywords: []string{
					"sorting algorithm", "sorting algorithms", "binary search",
					"big o notation", "time complexity", "space complexity",
					"dynamic programming", "greedy algorithm",
					"graph traversal", "breadth-first", "depth-first",
					"quicksort", "mergesort",
				}},
				{Name: "Data Structures", Keywords: []string{
					"data structure", "data structures", "linked list",
					"linked lists", "binary tree", "binary trees",
					"hash table", "hash tables", "priority queue",
					"adjacency list",
				}},
				{Name: "Neural Networks", Keywords: []string{
					"neural network", "neural networks", "perceptron",
					"backpropagation", "activation function",
					"activation functions", "convolutional", "hidden layer",
					"hidden layers",
				}},
				{Name: "Git", Keywords: []string{
					"git", "git branch", "git merge", "pull request",
					"pull requests", "version control",
				}},
				{Name: "Docker", Keywords: []string{
					"docker", "dockerfile", "container image",
					"container images", "kubernetes", "containerization",
					"docker compose",
				}},
			},
		},
		Chapters: Table{
			Fallback: "General",
			MinScore: 1,
			Categories: []Category{
				{Name: "Introduction", Keywords: []string{
					"introduction", "basics", "getting started", "overview",
					"fundamentals", "beginner", "beginners", "what is", "101",
				}},
				{Name: "Core Concepts", Keywords: []string{
					"core concepts", "concept", "concepts", "principles",
					"architecture", "how it works", "in depth", "deep dive",
					"under the hood",
				}},
				{Name: "Practical Examples", Keywords: []string{
					"example", "examples", "tutorial", "tutorials",
					"walkthrough", "hands-on", "step by step", "exercise",
					"exercises", "practice", "sample code",
				}},
				{Name: "Advanced Topics", Keywords: []string{
					"advanced", "optimization", "optimizations", "internals",
					"best practices", "performance", "expert", "scalability",
				}},
			},
		},
	}
}
