// Command docref is the CLI tool for JuniperDocs reference resolution.
// It provides commands for building index databases and resolving the
// cross-references in serialized document trees.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/linker"
	"github.com/FocuswithJustin/JuniperDocs/core/project"
	"github.com/FocuswithJustin/JuniperDocs/core/resolver"
	"github.com/FocuswithJustin/JuniperDocs/core/sqlite"
	"github.com/FocuswithJustin/JuniperDocs/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for docref.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Resolve ResolveCmd `cmd:"" help:"Resolve cross-references in a document tree"`
	Index   IndexGroup `cmd:"" help:"Index database operations (import, listings)"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// IndexGroup contains index database operations.
type IndexGroup struct {
	Import    ImportCmd    `cmd:"" help:"Build an index database from a JSON manifest"`
	Documents DocumentsCmd `cmd:"" help:"List documents in an index"`
	Labels    LabelsCmd    `cmd:"" help:"List labels in an index"`
	Objects   ObjectsCmd   `cmd:"" help:"List registered objects in an index"`
}

// ResolveCmd resolves the pending references in one document tree.
type ResolveCmd struct {
	Tree       string `arg:"" help:"Path to document tree (XML, optionally .xz)" type:"existingfile"`
	Index      string `required:"" help:"Path to index database" type:"existingfile"`
	Out        string `short:"o" help:"Output path (default: stdout)" type:"path"`
	Docname    string `help:"Override the tree's document name"`
	Suffix     string `default:".html" help:"Output file suffix for relative links"`
	SingleFile string `name:"single-file" help:"Resolve for single-file output rooted at this document"`
}

func (c *ResolveCmd) Run() error {
	db, err := sqlite.OpenReadOnly(c.Index)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer db.Close()

	env, err := project.Load(db)
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	doc, err := doctree.ReadFile(c.Tree)
	if err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}
	if c.Docname != "" {
		doc.Name = c.Docname
	}
	if doc.Name == "" {
		return fmt.Errorf("tree has no document name; pass --docname")
	}

	var lk linker.Linker
	if c.SingleFile != "" {
		lk = &linker.SingleFileLinker{RootDoc: c.SingleFile}
	} else {
		lk = &linker.RelativeLinker{Suffix: c.Suffix}
	}

	before := doctree.HashDocument(doc)
	stats := resolver.New(env, lk).Run(doc)
	after := doctree.HashDocument(doc)

	logging.ResolvePass(nil, doc.Name, stats.Pending, stats.Resolved, stats.Fallback,
		"hash_before", before, "hash_after", after)

	if c.Out != "" {
		if err := doctree.WriteFile(c.Out, doc); err != nil {
			return fmt.Errorf("failed to write tree: %w", err)
		}
		fmt.Printf("Resolved: %s\n", doc.Name)
		fmt.Printf("  Pending:  %d\n", stats.Pending)
		fmt.Printf("  Resolved: %d\n", stats.Resolved)
		fmt.Printf("  Fallback: %d\n", stats.Fallback)
		fmt.Printf("  Output: %s\n", c.Out)
		return nil
	}

	_, err = os.Stdout.Write(doc.XML())
	return err
}

// ImportCmd builds an index database from a JSON manifest.
type ImportCmd struct {
	Manifest string `arg:"" help:"Path to JSON manifest" type:"existingfile"`
	Index    string `arg:"" help:"Path to index database to create" type:"path"`
}

func (c *ImportCmd) Run() error {
	data, err := os.ReadFile(c.Manifest)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	env, err := manifestToEnv(data)
	if err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	db, err := sqlite.Open(c.Index)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer db.Close()

	if err := project.Save(db, env); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}

	fmt.Printf("Imported: %s\n", c.Manifest)
	fmt.Printf("  Documents: %d\n", len(env.Documents()))
	fmt.Printf("  Labels:    %d\n", len(env.Labels())+len(env.AnonLabels()))
	fmt.Printf("  Output: %s\n", c.Index)
	return nil
}

// DocumentsCmd lists the documents registered in an index.
type DocumentsCmd struct {
	Index string `arg:"" help:"Path to index database" type:"existingfile"`
}

func (c *DocumentsCmd) Run() error {
	env, err := loadIndex(c.Index)
	if err != nil {
		return err
	}
	for _, name := range env.Documents() {
		fmt.Printf("%s\t%s\n", name, doctree.CleanText(env.Title(name)))
	}
	return nil
}

// LabelsCmd lists the labels registered in an index.
type LabelsCmd struct {
	Index string `arg:"" help:"Path to index database" type:"existingfile"`
}

func (c *LabelsCmd) Run() error {
	env, err := loadIndex(c.Index)
	if err != nil {
		return err
	}
	for _, name := range env.Labels() {
		l, _ := env.Label(name)
		fmt.Printf("%s\t%s#%s\t%s\n", name, l.Docname, l.Anchor, l.Section)
	}
	for _, name := range env.AnonLabels() {
		l, _ := env.AnonLabel(name)
		fmt.Printf("%s\t%s#%s\t(anonymous)\n", name, l.Docname, l.Anchor)
	}
	return nil
}

// ObjectsCmd lists the objects registered in an index.
type ObjectsCmd struct {
	Index string `arg:"" help:"Path to index database" type:"existingfile"`
}

func (c *ObjectsCmd) Run() error {
	env, err := loadIndex(c.Index)
	if err != nil {
		return err
	}
	printRegistry := func(r *project.ObjectRegistry) {
		for _, e := range r.Entries() {
			entry, _ := r.Lookup(e.Type, e.Name)
			fmt.Printf("%s:%s\t%s\t%s#%s\n", r.Domain(), e.Type, e.Name, entry.Docname, entry.Anchor)
		}
	}
	printRegistry(env.Std())
	for _, d := range env.Domains() {
		if od, ok := d.(*project.ObjectDomain); ok {
			printRegistry(od.Registry)
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("docref version %s\n", version)
	return nil
}

func loadIndex(path string) (*project.Env, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer db.Close()

	env, err := project.Load(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return env, nil
}

// Manifest is the JSON description of a project's reference registries.
type Manifest struct {
	SourceSuffixes []string           `json:"source_suffixes,omitempty"`
	Documents      []ManifestDocument `json:"documents,omitempty"`
	Labels         []ManifestLabel    `json:"labels,omitempty"`
	Objects        []ManifestObject   `json:"objects,omitempty"`
}

// ManifestDocument registers one document and its title.
type ManifestDocument struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// ManifestLabel registers one label. Anonymous labels carry no section
// name; references to them supply their own captions.
type ManifestLabel struct {
	Name      string `json:"name"`
	Docname   string `json:"docname"`
	Anchor    string `json:"anchor,omitempty"`
	Section   string `json:"section,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

// ManifestObject registers one referenceable object.
type ManifestObject struct {
	Domain  string `json:"domain,omitempty"`
	Type    string `json:"type"`
	Role    string `json:"role,omitempty"`
	Name    string `json:"name"`
	Docname string `json:"docname"`
	Anchor  string `json:"anchor"`
}

// manifestToEnv parses a JSON manifest and builds the environment it
// describes. Objects without a domain go to std; roles default to the
// object type name.
func manifestToEnv(data []byte) (*project.Env, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	env := project.NewEnv(m.SourceSuffixes...)

	for _, d := range m.Documents {
		if d.Name == "" {
			return nil, fmt.Errorf("document with empty name")
		}
		title := doctree.NewElement("title")
		if d.Title != "" {
			title.Append(doctree.NewText(d.Title))
		}
		env.AddDocument(d.Name, title)
	}

	for _, l := range m.Labels {
		if l.Name == "" || l.Docname == "" {
			return nil, fmt.Errorf("label %q missing name or docname", l.Name)
		}
		if l.Anonymous {
			env.AddAnonLabel(l.Name, l.Docname, l.Anchor)
		} else {
			env.AddLabel(l.Name, l.Docname, l.Anchor, l.Section)
		}
	}

	domains := make(map[string]*project.ObjectDomain)
	for _, o := range m.Objects {
		if o.Type == "" || o.Name == "" {
			return nil, fmt.Errorf("object %q missing type or name", o.Name)
		}
		role := o.Role
		if role == "" {
			role = o.Type
		}

		var reg *project.ObjectRegistry
		if o.Domain == "" || o.Domain == project.StdDomainName {
			reg = env.Std()
		} else {
			d, ok := domains[o.Domain]
			if !ok {
				d = project.NewObjectDomain(o.Domain)
				domains[o.Domain] = d
				env.RegisterDomain(d)
			}
			reg = d.Registry
		}
		reg.DeclareType(o.Type, role)
		reg.Add(o.Type, o.Name, o.Docname, o.Anchor)
	}

	return env, nil
}

func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "info":
		return logging.LevelInfo
	case "error":
		return logging.LevelError
	default:
		return logging.LevelWarn
	}
}

func parseLogFormat(s string) logging.Format {
	if s == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docref"),
		kong.Description("JuniperDocs - cross-reference resolution for document trees"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(parseLogLevel(CLI.LogLevel), parseLogFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
