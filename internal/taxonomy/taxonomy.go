// Package taxonomy holds the static catalog of recognized technical skill
// tokens, grouped by category.
//
// A Taxonomy is constructed once at process start — from the built-in
// catalog or a YAML file — and passed explicitly into the extractor. It is
// never mutated afterwards, so tests can inject small custom catalogs.
package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy maps category names to canonical lowercase skill tokens.
type Taxonomy struct {
	categories map[string][]string
	vocabulary []string        // all tokens, sorted
	byToken    map[string]bool // membership set
}

// New builds a Taxonomy from a category→tokens mapping. Tokens are
// lowercased and deduplicated; input maps are copied, not retained.
func New(categories map[string][]string) *Taxonomy {
	t := &Taxonomy{
		categories: make(map[string][]string, len(categories)),
		byToken:    make(map[string]bool),
	}
	for category, tokens := range categories {
		clean := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			clean = append(clean, tok)
			if !t.byToken[tok] {
				t.byToken[tok] = true
				t.vocabulary = append(t.vocabulary, tok)
			}
		}
		t.categories[category] = clean
	}
	sort.Strings(t.vocabulary)
	return t
}

// LoadFile reads a category→tokens mapping from a YAML file.
func LoadFile(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}
	var categories map[string][]string
	if err := yaml.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("taxonomy %s defines no categories", path)
	}
	return New(categories), nil
}

// Vocabulary returns every token in the catalog, sorted. The returned slice
// is shared; callers must not modify it.
func (t *Taxonomy) Vocabulary() []string { return t.vocabulary }

// Contains reports whether token (lowercased) is in the catalog.
func (t *Taxonomy) Contains(token string) bool {
	return t.byToken[strings.ToLower(token)]
}

// Categories returns the category names, sorted.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categorize groups the given skills by catalog category. Skills outside
// the catalog and empty categories are omitted.
func (t *Taxonomy) Categorize(skills []string) map[string][]string {
	want := make(map[string]bool, len(skills))
	for _, s := range skills {
		want[strings.ToLower(s)] = true
	}

	out := make(map[string][]string)
	for category, tokens := range t.categories {
		for _, tok := range tokens {
			if want[tok] {
				out[category] = append(out[category], tok)
			}
		}
	}
	return out
}

// Default returns the built-in skill catalog.
func Default() *Taxonomy {
	return New(map[string][]string{
		"languages": {
			"python", "javascript", "java", "c++", "c#", "ruby", "go",
			"rust", "swift", "kotlin", "typescript", "php", "scala",
			"r", "matlab", "sql", "html", "css",
		},
		"frameworks": {
			"react", "angular", "vue", "django", "flask", "fastapi",
			"spring", "express", "next.js", "nuxt", "rails", "laravel",
			"nest.js", "svelte", ".net", "asp.net",
		},
		"databases": {
			"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
			"cassandra", "dynamodb", "sqlite", "oracle", "sql server",
			"mariadb", "firestore", "neo4j",
		},
		"cloud": {
			"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
			"cloudflare", "vercel", "netlify", "firebase",
		},
		"devops": {
			"docker", "kubernetes", "jenkins", "terraform", "ansible",
			"gitlab", "github actions", "circleci", "travis", "prometheus",
			"grafana", "elk", "nginx", "apache",
		},
		"ml_ai": {
			"tensorflow", "pytorch", "scikit-learn", "keras", "pandas",
			"numpy", "opencv", "nlp", "machine learning", "deep learning",
			"neural networks", "llm", "gpt", "transformers", "hugging face",
		},
		"tools": {
			"git", "jira", "confluence", "slack", "figma", "postman",
			"vscode", "intellij", "linux", "unix", "bash", "powershell",
		},
		"methodologies": {
			"agile", "scrum", "kanban", "ci/cd", "tdd", "microservices",
			"rest api", "graphql", "oauth", "jwt", "websocket",
		},
	})
}
