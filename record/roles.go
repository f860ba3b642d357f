package record

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/jatstemplate/host"
)

// SQLiteRoles reads user roles from a SQLite database.
type SQLiteRoles struct {
	db *sql.DB
}

var _ host.Roles = (*SQLiteRoles)(nil)

// OpenRoles opens or creates the role database at path and creates the
// user_roles table if it does not exist.
func OpenRoles(path string) (*SQLiteRoles, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening role database: %w", err)
	}

	r := &SQLiteRoles{db: db}
	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return r, nil
}

// Close releases the database connection.
func (r *SQLiteRoles) Close() error {
	return r.db.Close()
}

func (r *SQLiteRoles) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id TEXT NOT NULL,
			journal_id INTEGER NOT NULL,
			role_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, journal_id, role_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_user_roles_user ON user_roles(user_id, journal_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Grant gives a user a role in a journal. Granting a held role is a no-op.
func (r *SQLiteRoles) Grant(ctx context.Context, userID string, journalID int, role host.RoleID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_roles (user_id, journal_id, role_id) VALUES (?, ?, ?)`,
		userID, journalID, int(role))
	if err != nil {
		return fmt.Errorf("granting role %d to %s: %w", role, userID, err)
	}
	return nil
}

// RolesForUser returns the roles a user holds in a journal, ordered by id.
func (r *SQLiteRoles) RolesForUser(ctx context.Context, userID string, journalID int) ([]host.RoleID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = ? AND journal_id = ? ORDER BY role_id`,
		userID, journalID)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	var roles []host.RoleID
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, host.RoleID(id))
	}
	return roles, rows.Err()
}

// RoleGrant is one entry of a YAML role file.
type RoleGrant struct {
	UserID    string        `yaml:"user_id"`
	JournalID int           `yaml:"journal_id"`
	Roles     []host.RoleID `yaml:"roles"`
}

// StaticRoles is a fixed role table.
type StaticRoles []RoleGrant

var _ host.Roles = StaticRoles(nil)

// LoadRoles reads a YAML role file:
//
//	roles:
//	  - user_id: "7"
//	    journal_id: 1
//	    roles: [16]
func LoadRoles(path string) (StaticRoles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading role file: %w", err)
	}
	var file struct {
		Roles StaticRoles `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing role file %s: %w", path, err)
	}
	return file.Roles, nil
}

// RolesForUser returns every role granted to the user in the journal.
func (s StaticRoles) RolesForUser(_ context.Context, userID string, journalID int) ([]host.RoleID, error) {
	var roles []host.RoleID
	for _, g := range s {
		if g.UserID == userID && g.JournalID == journalID {
			roles = append(roles, g.Roles...)
		}
	}
	return roles, nil
}
