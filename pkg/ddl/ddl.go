// Package ddl is the statement-level DSL that generated migration files
// are written against. Statements are plain builders; executing them is
// delegated to whatever Executor the apply step supplies.
package ddl

import "github.com/schemaforge/schemaforge/pkg/schema"

// Referential actions, re-exported so generated files read ddl.Cascade.
const (
	NoAction = schema.NoAction
	Cascade  = schema.Cascade
	SetNull  = schema.SetNull
	Restrict = schema.Restrict
)

// Migration is one reversible migration module. Create artifacts and
// alter artifacts both satisfy it.
type Migration interface {
	Up(mgr *Manager) error
	Down(mgr *Manager) error
}

// Executor runs one DDL statement. The engine never supplies one; it is
// the seam for the downstream apply step.
type Executor interface {
	Exec(sql string) error
}

// Manager dispatches statements to an Executor.
type Manager struct {
	exec Executor
}

// NewManager wraps an Executor.
func NewManager(exec Executor) *Manager {
	return &Manager{exec: exec}
}

func (m *Manager) run(sql string) error {
	if m.exec == nil || sql == "" {
		return nil
	}
	return m.exec.Exec(sql)
}

// CreateTable executes a create-table statement.
func (m *Manager) CreateTable(st *CreateTable) error { return m.run(st.SQL()) }

// AlterTable executes an alter-table statement.
func (m *Manager) AlterTable(st *AlterTable) error { return m.run(st.SQL()) }

// DropTable executes a drop-table statement.
func (m *Manager) DropTable(st *DropTable) error { return m.run(st.SQL()) }

// CreateForeignKey executes a standalone add-foreign-key statement.
func (m *Manager) CreateForeignKey(st *CreateForeignKey) error { return m.run(st.SQL()) }

// DropForeignKey executes a drop-foreign-key statement.
func (m *Manager) DropForeignKey(st *DropForeignKey) error { return m.run(st.SQL()) }

// CreateIndex executes a create-index statement.
func (m *Manager) CreateIndex(st *CreateIndex) error { return m.run(st.SQL()) }

// DropIndex executes a drop-index statement.
func (m *Manager) DropIndex(st *DropIndex) error { return m.run(st.SQL()) }
