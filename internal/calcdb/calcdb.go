package calcdb

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Calculation is one evaluated expression as requested by a user.
type Calculation struct {
	ID         int64
	AuthorID   string
	ChannelID  string
	Expression string
	Result     float64
	// Err holds the evaluation error message, empty on success.
	Err       string
	Timestamp time.Time
}

type CalculationRepository interface {
	Close() error
	Delete(id int64) error
	FindByID(id int64) (*Calculation, error)
	FindByAuthor(authorID string, limit int) ([]Calculation, error)
	Save(c *Calculation) error
}

const schema = `CREATE TABLE IF NOT EXISTS calculations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	author TEXT NOT NULL,
	channel TEXT NOT NULL,
	expression TEXT NOT NULL,
	result REAL,
	err TEXT NOT NULL DEFAULT '',
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS calculations_author ON calculations (author, id);`

const columns = `id, author, channel, expression, result, err, timestamp`

type Repo struct {
	db               *sql.DB
	deleteStmt       *sql.Stmt
	findByIDStmt     *sql.Stmt
	findByAuthorStmt *sql.Stmt
	saveStmt         *sql.Stmt
}

var _ CalculationRepository = (*Repo)(nil)

// Open opens (creating if needed) the SQLite database at path. Use ":memory:"
// for a throwaway database.
func Open(path string) (*Repo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	repo, err := NewRepo(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewRepo creates the schema on db and prepares the repository statements.
func NewRepo(db *sql.DB) (*Repo, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	r := &Repo{db: db}
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.deleteStmt, `DELETE FROM calculations WHERE id = ?`},
		{&r.findByIDStmt, `SELECT ` + columns + ` FROM calculations WHERE id = ?`},
		{&r.findByAuthorStmt, `SELECT ` + columns + ` FROM calculations WHERE author = ? ORDER BY id DESC LIMIT ?`},
		{&r.saveStmt, `INSERT INTO calculations (author, channel, expression, result, err, timestamp) VALUES (?, ?, ?, ?, ?, ?)`},
	}
	for _, s := range stmts {
		stmt, err := db.Prepare(s.query)
		if err != nil {
			r.closeStmts()
			return nil, fmt.Errorf("preparing %q: %w", s.query, err)
		}
		*s.dst = stmt
	}
	return r, nil
}

// Close closes the prepared statements and the database.
func (r *Repo) Close() error {
	r.closeStmts()
	return r.db.Close()
}

func (r *Repo) closeStmts() {
	for _, stmt := range []*sql.Stmt{r.deleteStmt, r.findByIDStmt, r.findByAuthorStmt, r.saveStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
}

// Delete
func (r *Repo) Delete(id int64) error {
	_, err := r.deleteStmt.Exec(id)
	return err
}

// FindByID returns sql.ErrNoRows when there is no such calculation.
func (r *Repo) FindByID(id int64) (*Calculation, error) {
	c, err := scan(r.findByIDStmt.QueryRow(id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByAuthor returns the author's latest calculations, newest first.
func (r *Repo) FindByAuthor(authorID string, limit int) ([]Calculation, error) {
	var calcs []Calculation

	rows, err := r.findByAuthorStmt.Query(authorID, limit)
	if err != nil {
		return calcs, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return calcs, err
		}
		calcs = append(calcs, c)
	}
	return calcs, rows.Err()
}

// Save inserts c and sets its ID. A zero Timestamp is set to now.
func (r *Repo) Save(c *Calculation) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	res, err := r.saveStmt.Exec(
		c.AuthorID,
		c.ChannelID,
		c.Expression,
		nullableFloat(c.Result),
		c.Err,
		c.Timestamp.UTC())
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(s scanner) (Calculation, error) {
	var c Calculation
	var result sql.NullFloat64
	err := s.Scan(
		&c.ID,
		&c.AuthorID,
		&c.ChannelID,
		&c.Expression,
		&result,
		&c.Err,
		&c.Timestamp)
	c.Result = result.Float64
	if !result.Valid {
		c.Result = math.NaN()
	}
	return c, err
}

// nullableFloat stores values SQLite cannot represent (NaN) as NULL.
func nullableFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: !math.IsNaN(f)}
}

// FormatResult renders a result the way the bot prints it: the shortest
// decimal that round-trips, without an exponent.
func FormatResult(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c Calculation) String() string {
	var b strings.Builder
	b.WriteString(c.Expression)
	if c.Err != "" {
		b.WriteString(" -> error: ")
		b.WriteString(c.Err)
	} else {
		b.WriteString(" = ")
		b.WriteString(FormatResult(c.Result))
	}
	return b.String()
}
