package project

import (
	"database/sql"
	"sort"

	"github.com/FocuswithJustin/JuniperDocs/core/doctree"
	"github.com/FocuswithJustin/JuniperDocs/core/errors"
)

// The index store persists a project's reference registries between
// pipeline runs. Schema: one row per document, label, and object;
// domains other than std are reconstructed from the objects table.

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name      TEXT PRIMARY KEY,
	title_xml TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS labels (
	name      TEXT PRIMARY KEY,
	docname   TEXT NOT NULL,
	anchor    TEXT NOT NULL,
	section   TEXT NOT NULL,
	anonymous INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS objects (
	domain  TEXT NOT NULL,
	objtype TEXT NOT NULL,
	role    TEXT NOT NULL,
	name    TEXT NOT NULL,
	docname TEXT NOT NULL,
	anchor  TEXT NOT NULL,
	PRIMARY KEY (domain, objtype, name)
);
CREATE TABLE IF NOT EXISTS suffixes (
	suffix TEXT PRIMARY KEY
);
`

// InitStore creates the index tables if they do not exist.
func InitStore(db *sql.DB) error {
	_, err := db.Exec(schema)
	return errors.Wrap(err, "initializing index schema")
}

// Save writes the environment's registries to the database, replacing
// any existing contents.
func Save(db *sql.DB, env *Env) error {
	if err := InitStore(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting index transaction")
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "labels", "objects", "suffixes"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return errors.Wrapf(err, "clearing %s", table)
		}
	}

	for _, name := range env.Documents() {
		titleXML := string(doctree.Marshal(env.Title(name)))
		if _, err := tx.Exec(`INSERT INTO documents (name, title_xml) VALUES (?, ?)`, name, titleXML); err != nil {
			return errors.Wrapf(err, "saving document %s", name)
		}
	}

	for _, name := range env.Labels() {
		l, _ := env.Label(name)
		if _, err := tx.Exec(`INSERT INTO labels (name, docname, anchor, section, anonymous) VALUES (?, ?, ?, ?, 0)`,
			name, l.Docname, l.Anchor, l.Section); err != nil {
			return errors.Wrapf(err, "saving label %s", name)
		}
	}
	for _, name := range env.AnonLabels() {
		l, _ := env.AnonLabel(name)
		if _, err := tx.Exec(`INSERT INTO labels (name, docname, anchor, section, anonymous) VALUES (?, ?, ?, '', 1)`,
			name, l.Docname, l.Anchor); err != nil {
			return errors.Wrapf(err, "saving anonymous label %s", name)
		}
	}

	if err := saveRegistry(tx, env.Std()); err != nil {
		return err
	}
	for _, d := range env.Domains() {
		od, ok := d.(*ObjectDomain)
		if !ok {
			// Adapted or custom domains own their data; only
			// registry-backed domains persist.
			continue
		}
		if err := saveRegistry(tx, od.Registry); err != nil {
			return err
		}
	}

	for _, s := range env.SourceSuffixes() {
		if _, err := tx.Exec(`INSERT INTO suffixes (suffix) VALUES (?)`, s); err != nil {
			return errors.Wrapf(err, "saving suffix %s", s)
		}
	}

	return errors.Wrap(tx.Commit(), "committing index")
}

// saveRegistry writes one object registry's entries.
func saveRegistry(tx *sql.Tx, r *ObjectRegistry) error {
	for _, e := range r.Entries() {
		entry, _ := r.Lookup(e.Type, e.Name)
		role := r.RoleFor(e.Type)
		if _, err := tx.Exec(`INSERT INTO objects (domain, objtype, role, name, docname, anchor) VALUES (?, ?, ?, ?, ?, ?)`,
			r.Domain(), e.Type, role, e.Name, entry.Docname, entry.Anchor); err != nil {
			return errors.Wrapf(err, "saving object %s:%s", r.Domain(), e.Name)
		}
	}
	return nil
}

// Load reads an environment from the database. Domains other than std
// are registered in sorted name order so resolution is deterministic.
func Load(db *sql.DB) (*Env, error) {
	suffixes, err := loadSuffixes(db)
	if err != nil {
		return nil, err
	}
	env := NewEnv(suffixes...)

	rows, err := db.Query(`SELECT name, title_xml FROM documents`)
	if err != nil {
		return nil, errors.Wrap(err, "loading documents")
	}
	defer rows.Close()
	for rows.Next() {
		var name, titleXML string
		if err := rows.Scan(&name, &titleXML); err != nil {
			return nil, errors.Wrap(err, "scanning document")
		}
		title, err := doctree.ParseFragment([]byte(titleXML))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing title for %s", name)
		}
		env.AddDocument(name, title)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "loading documents")
	}

	if err := loadLabels(db, env); err != nil {
		return nil, err
	}
	if err := loadObjects(db, env); err != nil {
		return nil, err
	}
	return env, nil
}

func loadSuffixes(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT suffix FROM suffixes ORDER BY suffix`)
	if err != nil {
		return nil, errors.Wrap(err, "loading suffixes")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, errors.Wrap(err, "scanning suffix")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func loadLabels(db *sql.DB, env *Env) error {
	rows, err := db.Query(`SELECT name, docname, anchor, section, anonymous FROM labels`)
	if err != nil {
		return errors.Wrap(err, "loading labels")
	}
	defer rows.Close()

	for rows.Next() {
		var name, docname, anchor, section string
		var anonymous int
		if err := rows.Scan(&name, &docname, &anchor, &section, &anonymous); err != nil {
			return errors.Wrap(err, "scanning label")
		}
		if anonymous != 0 {
			env.AddAnonLabel(name, docname, anchor)
		} else {
			env.AddLabel(name, docname, anchor, section)
		}
	}
	return rows.Err()
}

func loadObjects(db *sql.DB, env *Env) error {
	rows, err := db.Query(`SELECT domain, objtype, role, name, docname, anchor FROM objects ORDER BY domain, objtype, name`)
	if err != nil {
		return errors.Wrap(err, "loading objects")
	}
	defer rows.Close()

	extra := make(map[string]*ObjectDomain)
	for rows.Next() {
		var domain, objType, role, name, docname, anchor string
		if err := rows.Scan(&domain, &objType, &role, &name, &docname, &anchor); err != nil {
			return errors.Wrap(err, "scanning object")
		}

		var reg *ObjectRegistry
		if domain == StdDomainName {
			reg = env.Std()
		} else {
			d, ok := extra[domain]
			if !ok {
				d = NewObjectDomain(domain)
				extra[domain] = d
			}
			reg = d.Registry
		}
		reg.DeclareType(objType, role)
		reg.Add(objType, name, docname, anchor)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env.RegisterDomain(extra[name])
	}
	return nil
}
