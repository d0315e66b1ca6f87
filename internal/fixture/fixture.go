// Package fixture builds the in-memory sample warehouse used by the smoke
// command and the engine's own tests.
package fixture

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

var seedStatements = []string{
	`CREATE TABLE departments (
		id   INTEGER PRIMARY KEY,
		name TEXT
	)`,
	`CREATE TABLE employees (
		id      INTEGER PRIMARY KEY,
		name    TEXT,
		dept_id INTEGER,
		salary  INTEGER,
		FOREIGN KEY(dept_id) REFERENCES departments(id)
	)`,
	`INSERT INTO departments(id,name) VALUES
		(1,'Engineering'),(2,'HR'),(3,'Sales')`,
	`INSERT INTO employees(id,name,dept_id,salary) VALUES
		(1,'Alice',1,120),(2,'Bob',1,110),(3,'Charlie',2,90),(4,'David',3,100),(5,'Eva',3,95)`,
}

// Open returns an in-memory SQLite backend pre-seeded with the fixed
// schema and rows: employees(id,name,dept_id,salary) joined to
// departments(id,name).
func Open(ctx context.Context) (backend.Backend, error) {
	b, err := backend.OpenSQLite(backend.Config{Path: ":memory:"})
	if err != nil {
		return nil, err
	}
	execer, ok := b.(backend.Execer)
	if !ok {
		util.CloseWithErr(b, "fixture backend")
		return nil, errors.New("fixture backend does not support exec")
	}
	for _, stmt := range seedStatements {
		if err := execer.Exec(ctx, stmt); err != nil {
			util.CloseWithErr(b, "fixture backend")
			return nil, errors.Wrap(err, "seed fixture")
		}
	}
	return b, nil
}

// SampleCase is the shipped sample scenario: per-department headcount,
// with two accepted gold formulations.
func SampleCase() (question string, gold []string, pred string) {
	question = "Count employees per department, ordered by department name"
	gold = []string{
		"SELECT d.name AS dept, COUNT(*) AS cnt FROM employees e JOIN departments d ON e.dept_id = d.id GROUP BY d.name ORDER BY d.name",
		"SELECT name AS dept, COUNT(*) AS cnt FROM (SELECT e.dept_id, d.name FROM employees e JOIN departments d ON e.dept_id = d.id) t GROUP BY name ORDER BY name",
	}
	pred = "SELECT d.name AS dept, COUNT(1) AS cnt FROM departments d JOIN employees e ON e.dept_id = d.id GROUP BY d.name ORDER BY d.name"
	return question, gold, pred
}
